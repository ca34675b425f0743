package aggregates

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ordering-backend/internal/data/repos"
	types "github.com/yungbote/ordering-backend/internal/domain"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
)

// recordClientRequest inserts the dedup row for a client-supplied request id
// inside the caller's transaction. A nil id means the caller is not running
// under an identified command and nothing is recorded. A concurrent retry
// hits the primary key and rolls the whole unit of work back as a conflict.
func recordClientRequest(dbc dbctx.Context, requests repos.ClientRequestRepo, id uuid.UUID, name string, payload any) error {
	if id == uuid.Nil || requests == nil {
		return nil
	}
	var raw datatypes.JSON
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		raw = datatypes.JSON(b)
	}
	return requests.Create(dbc, &types.ClientRequest{
		ID:        id,
		Name:      name,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	})
}
