package memory

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type cashRepo struct{ do access }

func (r *cashRepo) Create(_ context.Context, session *entity.CashSession) error {
	return r.do(func(s *state) error {
		for _, existing := range s.sessions {
			if existing.OperatorID == session.OperatorID && existing.IsOpen() {
				return domain.ErrAlreadyOpen
			}
		}
		if _, ok := s.sessions[session.ID]; ok {
			return domain.ErrConflict
		}
		c := *session
		c.Movements = nil
		s.sessions[session.ID] = c
		s.sessOrder = append(s.sessOrder, session.ID)
		return nil
	})
}

func (r *cashRepo) GetByID(_ context.Context, id string) (*entity.CashSession, error) {
	var out *entity.CashSession
	err := r.do(func(s *state) error {
		if sess, ok := s.sessions[id]; ok {
			c := copySession(sess)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *cashRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashSession, error) {
	return r.GetByID(ctx, id)
}

func (r *cashRepo) GetOpenByOperator(_ context.Context, operatorID string) (*entity.CashSession, error) {
	var out *entity.CashSession
	err := r.do(func(s *state) error {
		for _, sess := range s.sessions {
			if sess.OperatorID == operatorID && sess.IsOpen() {
				c := copySession(sess)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *cashRepo) Close(_ context.Context, session *entity.CashSession) error {
	return r.do(func(s *state) error {
		cur, ok := s.sessions[session.ID]
		if !ok {
			return domain.NotFound("sesión de caja", session.ID)
		}
		cur.Status = entity.CashSessionClosed
		cur.EndAmount = session.EndAmount
		cur.EndTime = session.EndTime
		s.sessions[session.ID] = cur
		return nil
	})
}

func (r *cashRepo) AddMovement(_ context.Context, m *entity.CashMovement) error {
	return r.do(func(s *state) error {
		cur, ok := s.sessions[m.SessionID]
		if !ok {
			return domain.NotFound("sesión de caja", m.SessionID)
		}
		s.cashSeq++
		m.Seq = s.cashSeq
		cur.Movements = append(cur.Movements, *m)
		s.sessions[m.SessionID] = cur
		return nil
	})
}

func (r *cashRepo) List(_ context.Context, f repository.CashSessionFilter) ([]*entity.CashSession, error) {
	var out []*entity.CashSession
	err := r.do(func(s *state) error {
		for i := len(s.sessOrder) - 1; i >= 0; i-- {
			sess := copySession(s.sessions[s.sessOrder[i]])
			if f.OperatorID != "" && sess.OperatorID != f.OperatorID {
				continue
			}
			if f.Status != "" && sess.Status != f.Status {
				continue
			}
			out = append(out, &sess)
		}
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}
