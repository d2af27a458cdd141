package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/db"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/dberrors"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

var communityColumns = []string{
	"id", "name", "category", "description", "created_by", "creation_cost", "challenge", "created_at",
}

// PostgresCommunityRepository handles community board database operations
type PostgresCommunityRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCommunityRepository creates a new PostgresCommunityRepository
func NewCommunityRepository(database *db.PostgresDB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanCommunity(row pgx.Row) (*models.Community, error) {
	c := &models.Community{}
	var challenge []byte
	if err := row.Scan(&c.ID, &c.Name, &c.Category, &c.Description, &c.CreatedBy,
		&c.CreationCost, &challenge, &c.CreatedAt); err != nil {
		return nil, err
	}
	if len(challenge) > 0 {
		c.Challenge = &models.Challenge{}
		if err := json.Unmarshal(challenge, c.Challenge); err != nil {
			return nil, fmt.Errorf("error decoding challenge: %w", err)
		}
	}
	return c, nil
}

// Create inserts a community. Names are unique.
func (r *PostgresCommunityRepository) Create(ctx context.Context, community *models.Community) error {
	sql, args, err := r.sb.Insert("communities").
		Columns("name", "category", "description", "created_by", "creation_cost").
		Values(community.Name, community.Category, community.Description, community.CreatedBy, community.CreationCost).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create community SQL")
		return fmt.Errorf("failed to build create community query: %w", err)
	}

	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&community.ID, &community.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "communities_name_key") {
			return apperrors.ErrCommunityAlreadyExists
		}
		logger.Error().Err(err).Str("name", community.Name).Msg("Error executing create community query")
		return fmt.Errorf("error creating community: %w", err)
	}
	return nil
}

// GetByID retrieves a community by ID without members or posts
func (r *PostgresCommunityRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	sql, args, err := r.sb.Select(communityColumns...).
		From("communities").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get community SQL")
		return nil, fmt.Errorf("failed to build get community query: %w", err)
	}

	community, err := scanCommunity(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		logger.Error().Err(err).Int64("communityID", id).Msg("Error scanning community row")
		return nil, fmt.Errorf("error getting community: %w", err)
	}
	return community, nil
}

// List returns communities newest first, optionally only those created by one account
func (r *PostgresCommunityRepository) List(ctx context.Context, createdBy *int64) ([]*models.Community, error) {
	query := r.sb.Select(communityColumns...).From("communities")
	if createdBy != nil {
		query = query.Where(squirrel.Eq{"created_by": *createdBy})
	}

	sql, args, err := query.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list communities SQL")
		return nil, fmt.Errorf("failed to build list communities query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list communities query")
		return nil, fmt.Errorf("error listing communities: %w", err)
	}
	defer rows.Close()

	communities := make([]*models.Community, 0)
	for rows.Next() {
		c, err := scanCommunity(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning community row")
			return nil, fmt.Errorf("error scanning community: %w", err)
		}
		communities = append(communities, c)
	}
	return communities, rows.Err()
}

// AddMember adds an account to a community
func (r *PostgresCommunityRepository) AddMember(ctx context.Context, communityID, accountID int64) error {
	sql, args, err := r.sb.Insert("community_members").
		Columns("community_id", "account_id").
		Values(communityID, accountID).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add member SQL")
		return fmt.Errorf("failed to build add member query: %w", err)
	}

	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "community_members_pkey") {
			return apperrors.ErrAlreadyMember
		}
		logger.Error().Err(err).Int64("communityID", communityID).Int64("accountID", accountID).Msg("Error executing add member query")
		return fmt.Errorf("error adding member: %w", err)
	}
	return nil
}

// IsMember checks community membership
func (r *PostgresCommunityRepository) IsMember(ctx context.Context, communityID, accountID int64) (bool, error) {
	var exists bool
	err := r.db.Conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM community_members WHERE community_id = $1 AND account_id = $2)`,
		communityID, accountID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("communityID", communityID).Msg("Error checking membership")
		return false, fmt.Errorf("error checking membership: %w", err)
	}
	return exists, nil
}

// ListMembers returns members in join order with their display names
func (r *PostgresCommunityRepository) ListMembers(ctx context.Context, communityID int64) ([]*models.CommunityMember, error) {
	sql, args, err := r.sb.Select("m.community_id", "m.account_id", "a.name", "m.joined_at").
		From("community_members m").
		Join("accounts a ON a.id = m.account_id").
		Where(squirrel.Eq{"m.community_id": communityID}).
		OrderBy("m.joined_at", "m.account_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list members SQL")
		return nil, fmt.Errorf("failed to build list members query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list members query")
		return nil, fmt.Errorf("error listing members: %w", err)
	}
	defer rows.Close()

	members := make([]*models.CommunityMember, 0)
	for rows.Next() {
		m := &models.CommunityMember{}
		if err := rows.Scan(&m.CommunityID, &m.AccountID, &m.Name, &m.JoinedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning member row")
			return nil, fmt.Errorf("error scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CreatePost stores a post
func (r *PostgresCommunityRepository) CreatePost(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Insert("community_posts").
		Columns("community_id", "author_id", "content").
		Values(post.CommunityID, post.AuthorID, post.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("communityID", post.CommunityID).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}
	post.Comments = make([]*models.Comment, 0)
	return nil
}

// GetPost retrieves a post without its comments
func (r *PostgresCommunityRepository) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	sql, args, err := r.sb.Select("id", "community_id", "author_id", "content", "created_at").
		From("community_posts").
		Where(squirrel.Eq{"id": postID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get post SQL")
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	p := &models.Post{Comments: make([]*models.Comment, 0)}
	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CommunityID, &p.AuthorID, &p.Content, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", postID).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	return p, nil
}

// ListPosts returns the community's posts newest first, each with its comments oldest first
func (r *PostgresCommunityRepository) ListPosts(ctx context.Context, communityID int64) ([]*models.Post, error) {
	sql, args, err := r.sb.Select("id", "community_id", "author_id", "content", "created_at").
		From("community_posts").
		Where(squirrel.Eq{"community_id": communityID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list posts query")
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	posts := make([]*models.Post, 0)
	byID := make(map[int64]*models.Post)
	postIDs := make([]int64, 0)
	for rows.Next() {
		p := &models.Post{Comments: make([]*models.Comment, 0)}
		if err := rows.Scan(&p.ID, &p.CommunityID, &p.AuthorID, &p.Content, &p.CreatedAt); err != nil {
			rows.Close()
			logger.Error().Err(err).Msg("Error scanning post row")
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		posts = append(posts, p)
		byID[p.ID] = p
		postIDs = append(postIDs, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading posts: %w", err)
	}
	if len(postIDs) == 0 {
		return posts, nil
	}

	sql, args, err = r.sb.Select("id", "post_id", "author_id", "content", "created_at").
		From("community_comments").
		Where(squirrel.Eq{"post_id": postIDs}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list comments SQL")
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	commentRows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		c := &models.Comment{}
		if err := commentRows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning comment row")
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		if p, ok := byID[c.PostID]; ok {
			p.Comments = append(p.Comments, c)
		}
	}
	return posts, commentRows.Err()
}

// CreateComment stores a comment on a post
func (r *PostgresCommunityRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	sql, args, err := r.sb.Insert("community_comments").
		Columns("post_id", "author_id", "content").
		Values(comment.PostID, comment.AuthorID, comment.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create comment SQL")
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("postID", comment.PostID).Msg("Error executing create comment query")
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// SetChallenge replaces the community challenge
func (r *PostgresCommunityRepository) SetChallenge(ctx context.Context, communityID int64, challenge *models.Challenge) error {
	encoded, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("error encoding challenge: %w", err)
	}

	sql, args, err := r.sb.Update("communities").
		Set("challenge", encoded).
		Where(squirrel.Eq{"id": communityID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set challenge SQL")
		return fmt.Errorf("failed to build set challenge query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("communityID", communityID).Msg("Error executing set challenge query")
		return fmt.Errorf("error setting challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommunityNotFound
	}
	return nil
}
