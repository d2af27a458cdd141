package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/skillswap/internal/app/models"
)

// Custom binding tags for the platform's closed vocabularies
const (
	TagSkillLevel        = "skilllevel"
	TagSkillCategory     = "skillcategory"
	TagSkillDirection    = "skilldirection"
	TagExperienceType    = "experiencetype"
	TagCommunityCategory = "communitycategory"
)

var rules = map[string]validator.Func{
	TagSkillLevel: func(fl validator.FieldLevel) bool {
		return models.SkillLevel(fl.Field().String()).Valid()
	},
	TagSkillCategory: func(fl validator.FieldLevel) bool {
		return models.SkillCategory(fl.Field().String()).Valid()
	},
	TagSkillDirection: func(fl validator.FieldLevel) bool {
		return models.SkillDirection(fl.Field().String()).Valid()
	},
	TagExperienceType: func(fl validator.FieldLevel) bool {
		return models.ExperienceType(fl.Field().String()).Valid()
	},
	TagCommunityCategory: func(fl validator.FieldLevel) bool {
		return models.CommunityCategory(fl.Field().String()).Valid()
	},
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterRules installs the custom tags on gin's validator engine. Safe to call more than once.
func RegisterRules() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// Register installs the custom tags on v and reports fields by their JSON names
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s rule: %w", tag, err)
		}
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
