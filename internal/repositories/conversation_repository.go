package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
)

const (
	conversationsTable = "historial_conversaciones_diarias"
	conversationEntity = "conversation"
)

var conversationList = listSpec{
	searchColumns: []string{"historial_conversacion"},
	filterColumns: Fields{"idusuario"},
	orders: map[Sort][]db.Order{
		SortDefault: {{Column: "fecha", Desc: true}, {Column: "id", Desc: true}},
	},
}

type conversationRepo struct {
	pool pgProvider
}

func NewConversationPostgresRepository(pool pgProvider) ConversationRepository {
	return &conversationRepo{pool: pool}
}

func (r *conversationRepo) List(ctx context.Context, params ListParams) ([]*models.ConversationMessage, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) ([]*models.ConversationMessage, error) {
		out, err := pgList(ctx, c, conversationList, `
			SELECT id, fecha::text, idusuario, nombreusuario, historial_conversacion
			FROM historial_conversaciones_diarias`, "", params, scanConversation)
		return out, annotate(err, "list", conversationEntity, "")
	})
}

func scanConversation(row pgx.Row) (*models.ConversationMessage, error) {
	var m models.ConversationMessage
	if err := row.Scan(&m.ID, &m.Date, &m.UserID, &m.UserName, &m.Message); err != nil {
		return nil, err
	}
	return &m, nil
}
