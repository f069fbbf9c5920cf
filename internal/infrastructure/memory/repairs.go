package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type repairRepo struct{ do access }

func (r *repairRepo) Create(_ context.Context, repair *entity.RepairTicket) error {
	return r.do(func(s *state) error {
		for _, existing := range s.repairs {
			if existing.TicketNumber == repair.TicketNumber {
				return domain.ErrConflict
			}
		}
		if _, ok := s.repairs[repair.ID]; ok {
			return domain.ErrConflict
		}
		header := *repair
		header.StatusLogs, header.Items, header.Notes, header.SoftwareActions = nil, nil, nil, nil
		s.repairs[repair.ID] = header
		s.repOrder = append(s.repOrder, repair.ID)
		return nil
	})
}

func (r *repairRepo) GetByID(_ context.Context, id string) (*entity.RepairTicket, error) {
	var out *entity.RepairTicket
	err := r.do(func(s *state) error {
		if rep, ok := s.repairs[id]; ok {
			c := copyRepair(rep)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *repairRepo) GetForUpdate(ctx context.Context, id string) (*entity.RepairTicket, error) {
	return r.GetByID(ctx, id)
}

func (r *repairRepo) Update(_ context.Context, repair *entity.RepairTicket) error {
	return r.mutate(repair.ID, func(cur *entity.RepairTicket) error {
		cur.Status = repair.Status
		cur.TechnicianID = repair.TechnicianID
		cur.DiagnosticInitial = repair.DiagnosticInitial
		cur.DiagnosticFinal = repair.DiagnosticFinal
		cur.EstimatedCost = repair.EstimatedCost
		cur.EstimatedDelivery = repair.EstimatedDelivery
		cur.Warranty = repair.Warranty
		cur.FinalCost = repair.FinalCost
		cur.SignaturePhoto = repair.SignaturePhoto
		cur.DeliveredAt = repair.DeliveredAt
		cur.CanceledAt = repair.CanceledAt
		cur.UpdatedAt = repair.UpdatedAt
		return nil
	})
}

func (r *repairRepo) AddStatusLog(_ context.Context, log *entity.RepairStatusLog) error {
	return r.do(func(s *state) error {
		rep, ok := s.repairs[log.RepairID]
		if !ok {
			return domain.NotFound("reparación", log.RepairID)
		}
		s.logSeq++
		log.Seq = s.logSeq
		rep.StatusLogs = append(rep.StatusLogs, *log)
		s.repairs[log.RepairID] = rep
		return nil
	})
}

func (r *repairRepo) AddItem(_ context.Context, item *entity.RepairItem) error {
	return r.mutate(item.RepairID, func(cur *entity.RepairTicket) error {
		cur.Items = append(cur.Items, *item)
		return nil
	})
}

func (r *repairRepo) MarkItemsReturned(_ context.Context, itemIDs []string, at time.Time) error {
	ids := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = struct{}{}
	}
	return r.do(func(s *state) error {
		for rid, rep := range s.repairs {
			changed := false
			for i := range rep.Items {
				if _, ok := ids[rep.Items[i].ID]; ok && rep.Items[i].ReturnedAt == nil {
					rep.Items[i].ReturnedAt = &at
					changed = true
				}
			}
			if changed {
				s.repairs[rid] = rep
			}
		}
		return nil
	})
}

func (r *repairRepo) AddNote(_ context.Context, note *entity.RepairNote) error {
	return r.mutate(note.RepairID, func(cur *entity.RepairTicket) error {
		cur.Notes = append(cur.Notes, *note)
		return nil
	})
}

func (r *repairRepo) AddSoftwareAction(_ context.Context, action *entity.RepairSoftwareAction) error {
	return r.mutate(action.RepairID, func(cur *entity.RepairTicket) error {
		cur.SoftwareActions = append(cur.SoftwareActions, *action)
		return nil
	})
}

func (r *repairRepo) List(_ context.Context, f repository.RepairFilter) ([]*entity.RepairTicket, error) {
	var out []*entity.RepairTicket
	err := r.do(func(s *state) error {
		for i := len(s.repOrder) - 1; i >= 0; i-- {
			rep := copyRepair(s.repairs[s.repOrder[i]])
			if f.Status != "" && rep.Status != f.Status {
				continue
			}
			if f.TechnicianID != "" && (rep.TechnicianID == nil || *rep.TechnicianID != f.TechnicianID) {
				continue
			}
			if f.ClientID != "" && rep.ClientID != f.ClientID {
				continue
			}
			if f.DeviceID != "" && rep.DeviceID != f.DeviceID {
				continue
			}
			if f.From != nil && rep.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && rep.CreatedAt.After(*f.To) {
				continue
			}
			out = append(out, &rep)
		}
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

func (r *repairRepo) mutate(id string, fn func(cur *entity.RepairTicket) error) error {
	return r.do(func(s *state) error {
		rep, ok := s.repairs[id]
		if !ok {
			return domain.NotFound("reparación", id)
		}
		if err := fn(&rep); err != nil {
			return err
		}
		s.repairs[id] = rep
		return nil
	})
}
