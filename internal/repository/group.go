package repository

import (
	"context"
	"errors"
	"time"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "society_hub/pkg/errors"
)

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group, memberIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMember, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	CreateMessage(ctx context.Context, message *domain.GroupMessage) error
	GetMessages(ctx context.Context, groupID uuid.UUID, limit int, after time.Time) ([]*domain.GroupMessage, error)
}

type groupRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewGroupRepository(db *pgxpool.Pool, log logger.Logger) GroupRepository {
	return &groupRepository{db: db, log: log}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group, memberIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO groups (id, society_id, name, description, created_by, member_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		group.ID, group.SocietyID, group.Name, group.Description,
		group.CreatedBy, group.MemberCount, time.Now(),
	).Scan(&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create group", "error", err, "name", group.Name)
		return err
	}

	for _, memberID := range memberIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			group.ID, memberID, time.Now(),
		)
		if err != nil {
			r.log.Error("Failed to add group member", "error", err, "group_id", group.ID, "user_id", memberID)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	query := `
		SELECT id, society_id, name, description, created_by, member_count, last_message, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	group := &domain.Group{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID, &group.SocietyID, &group.Name, &group.Description, &group.CreatedBy,
		&group.MemberCount, &group.LastMessage, &group.CreatedAt, &group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		r.log.Error("Failed to get group", "error", err, "group_id", id)
		return nil, err
	}

	return group, nil
}

func (r *groupRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	query := `
		SELECT g.id, g.society_id, g.name, g.description, g.created_by, g.member_count, g.last_message, g.created_at, g.updated_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list groups", "error", err, "user_id", userID)
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		group := &domain.Group{}
		err := rows.Scan(
			&group.ID, &group.SocietyID, &group.Name, &group.Description, &group.CreatedBy,
			&group.MemberCount, &group.LastMessage, &group.CreatedAt, &group.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan group", "error", err)
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// group_members и group_messages удаляются каскадом
	tag, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete group", "error", err, "group_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

func (r *groupRepository) GetMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMember, error) {
	query := `
		SELECT group_id, user_id, joined_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at
	`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		r.log.Error("Failed to get group members", "error", err, "group_id", groupID)
		return nil, err
	}
	defer rows.Close()

	var members []*domain.GroupMember
	for rows.Next() {
		member := &domain.GroupMember{}
		if err := rows.Scan(&member.GroupID, &member.UserID, &member.JoinedAt); err != nil {
			r.log.Error("Failed to scan group member", "error", err)
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		r.log.Error("Failed to check group membership", "error", err, "group_id", groupID)
		return false, err
	}

	return exists, nil
}

func (r *groupRepository) CreateMessage(ctx context.Context, message *domain.GroupMessage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO group_messages (group_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		message.GroupID, message.SenderID, message.Content, message.CreatedAt,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create group message", "error", err, "group_id", message.GroupID)
		return err
	}

	// Обновляем превью последнего сообщения в списке групп
	_, err = tx.Exec(ctx,
		`UPDATE groups SET last_message = $2, updated_at = $3 WHERE id = $1`,
		message.GroupID, message.Content, message.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to bump group", "error", err, "group_id", message.GroupID)
		return err
	}

	return tx.Commit(ctx)
}

func (r *groupRepository) GetMessages(ctx context.Context, groupID uuid.UUID, limit int, after time.Time) ([]*domain.GroupMessage, error) {
	query := `
		SELECT id, group_id, sender_id, content, created_at
		FROM group_messages
		WHERE group_id = $1 AND created_at > $2
		ORDER BY created_at ASC
		LIMIT $3
	`
	// Без курсора первая страница - последние limit сообщений
	if after.IsZero() {
		query = `
			SELECT id, group_id, sender_id, content, created_at
			FROM group_messages
			WHERE group_id = $1 AND created_at > $2
			ORDER BY created_at DESC
			LIMIT $3
		`
	}

	rows, err := r.db.Query(ctx, query, groupID, after, limit)
	if err != nil {
		r.log.Error("Failed to get group messages", "error", err, "group_id", groupID)
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.GroupMessage
	for rows.Next() {
		message := &domain.GroupMessage{}
		err := rows.Scan(&message.ID, &message.GroupID, &message.SenderID, &message.Content, &message.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan group message", "error", err)
			return nil, err
		}
		messages = append(messages, message)
	}
	if after.IsZero() {
		reverseChrono(messages)
	}

	return messages, rows.Err()
}
