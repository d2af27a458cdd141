package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/controllers"
	"github.com/yigit/skillswap/internal/middleware"
)

// Controllers groups every HTTP handler set the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Skill      *controllers.SkillController
	Request    *controllers.RequestController
	Feedback   *controllers.FeedbackController
	Redeem     *controllers.RedeemController
	Community  *controllers.CommunityController
	Experience *controllers.ExperienceController
	Startup    *controllers.StartupController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", c.Health.Ping)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", c.Health.Health)

	// --- Public routes ---
	v1.POST("/accounts", c.Auth.Register)
	v1.POST("/auth/login", c.Auth.Login)

	skills := v1.Group("/skills")
	{
		skills.GET("/search", c.Skill.SearchSkills)
		skills.GET("/user/:userId", c.Skill.ListUserSkills)
	}

	feedback := v1.Group("/feedback")
	{
		feedback.GET("/mentor/:mentorId", c.Feedback.ListMentorFeedback)
		feedback.GET("/request/:requestId", c.Feedback.GetRequestFeedback)
	}

	v1.GET("/redeem/options", c.Redeem.ListOptions)

	communities := v1.Group("/communities")
	{
		communities.GET("", c.Community.GetAllCommunities)
		communities.GET("/:id", c.Community.GetCommunityByID)
	}

	experiences := v1.Group("/experiences")
	{
		experiences.GET("", c.Experience.ListExperiences)
		experiences.GET("/:id", c.Experience.GetExperience)
		experiences.POST("/classify", c.Experience.Classify)
	}

	startups := v1.Group("/startups")
	{
		startups.GET("", c.Startup.ListStartups)
		startups.GET("/:id", c.Startup.GetStartup)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", c.Auth.Me)
		authenticated.GET("/accounts/me/ledger", c.User.Ledger)

		users := authenticated.Group("/users")
		{
			users.GET("", c.User.ListUsers)
			users.GET("/leaderboard", c.User.Leaderboard)
			users.GET("/recommendations/:userId", c.User.Recommendations)
			users.GET("/:id", c.User.GetUserByID)
		}

		authenticated.POST("/skills", c.Skill.PublishSkill)

		requests := authenticated.Group("/requests")
		{
			requests.POST("", c.Request.CreateRequest)
			requests.GET("/user/:userId", c.Request.ListUserRequests)
			requests.GET("/:id", c.Request.GetRequest)
			requests.PUT("/:id/accept", c.Request.AcceptRequest)
			requests.PUT("/:id/complete", c.Request.CompleteRequest)
			requests.PUT("/:id/notes", c.Request.UpdateNotes)
			requests.POST("/:id/quiz", c.Request.AttachQuiz)
			requests.POST("/:id/quiz/submit", c.Request.SubmitQuiz)
			requests.GET("/:id/messages", c.Request.ListMessages)
			requests.POST("/:id/messages", c.Request.PostMessage)
		}

		authenticated.POST("/feedback", c.Feedback.SubmitFeedback)

		redeem := authenticated.Group("/redeem")
		{
			redeem.POST("", c.Redeem.Redeem)
			redeem.GET("/history", c.Redeem.History)
			redeem.GET("/transactions", c.Redeem.Transactions)
		}

		communitiesProtected := authenticated.Group("/communities")
		{
			communitiesProtected.POST("", c.Community.CreateCommunity)
			communitiesProtected.POST("/:id/join", c.Community.JoinCommunity)
			communitiesProtected.POST("/:id/posts", c.Community.CreatePost)
			communitiesProtected.POST("/:id/posts/:postId/comments", c.Community.AddComment)
			communitiesProtected.POST("/:id/challenge", c.Community.SetChallenge)
		}

		experiencesProtected := authenticated.Group("/experiences")
		{
			experiencesProtected.POST("", c.Experience.ShareExperience)
			experiencesProtected.POST("/:id/react", c.Experience.React)
		}

		startupsProtected := authenticated.Group("/startups")
		{
			startupsProtected.POST("", c.Startup.RegisterStartup)
			startupsProtected.POST("/:id/sponsor", c.Startup.SponsorStartup)
			startupsProtected.POST("/:id/rate", c.Startup.RateStartup)
		}
	}
}
