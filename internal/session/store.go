package session

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/supermarket/internal/models"
)

var ErrNoSession = errors.New("session not found")

// Data is everything kept server-side for one browser session.
// It holds only the user's id, name and role, never the password hash.
type Data struct {
	UserID   int                 `json:"user_id,omitempty"`
	Username string              `json:"username,omitempty"`
	Role     models.Role         `json:"role,omitempty"`
	Cart     models.Cart         `json:"cart"`
	Flash    map[string][]string `json:"flash,omitempty"`
}

type Store interface {
	Load(ctx context.Context, id string) (Data, error)
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	Destroy(ctx context.Context, id string) error
}
