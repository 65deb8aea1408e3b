package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"synergym-api/internal/domain"
)

// RoutineService 负责 routine 聚合：routine 行与其有序成员作为一个整体读写。
// 所有写操作都在同一个事务里完成，失败时不会留下半成品。
type RoutineService struct {
	store domain.Store
	log   *zap.Logger
}

func NewRoutineService(store domain.Store, l *zap.Logger) *RoutineService {
	if l == nil {
		l = zap.NewNop()
	}
	return &RoutineService{store: store, log: l.Named("routine")}
}

func (s *RoutineService) CreateRoutine(ctx context.Context, spec RoutineSpec, userID uint) (*RoutineView, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	var out *RoutineView
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		v, err := createRoutine(ctx, tx, spec, userID)
		out = v
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("routine created",
		zap.Uint("routine_id", out.ID),
		zap.Uint("user_id", userID),
		zap.Int("exercises", len(out.Exercises)),
	)
	return out, nil
}

func (s *RoutineService) GetRoutineDetails(ctx context.Context, routineID uint) (*RoutineView, error) {
	return routineDetails(ctx, s.store, routineID)
}

// GetRoutinesByUser 成员通过批量预加载获取，不会按 routine 逐个查询
func (s *RoutineService) GetRoutinesByUser(ctx context.Context, userID uint) ([]RoutineView, error) {
	if _, err := findUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	rs, err := s.store.Routines().FindByUserWithExercises(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list routines of user %d: %w", userID, err)
	}
	return toRoutineViews(rs), nil
}

func (s *RoutineService) GetAllRoutines(ctx context.Context) ([]RoutineView, error) {
	rs, err := s.store.Routines().FindAllWithExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return toRoutineViews(rs), nil
}

func (s *RoutineService) GetRoutinesByName(ctx context.Context, name string) ([]RoutineView, error) {
	rs, err := s.store.Routines().FindByNameWithExercises(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find routines by name: %w", err)
	}
	return toRoutineViews(rs), nil
}

// UpdateRoutine 全量替换：旧成员全部删除后按 spec 重新插入，成员 id 会变化
func (s *RoutineService) UpdateRoutine(ctx context.Context, routineID uint, spec RoutineSpec) (*RoutineView, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	var out *RoutineView
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		r, err := findRoutine(ctx, tx, routineID)
		if err != nil {
			return err
		}
		r.Name = spec.Name
		r.Description = spec.Description
		if err := tx.Routines().UpdateDetails(ctx, r); err != nil {
			return fmt.Errorf("update routine %d: %w", routineID, err)
		}
		if _, err := tx.RoutineExercises().DeleteByRoutine(ctx, routineID); err != nil {
			return fmt.Errorf("clear routine %d exercises: %w", routineID, err)
		}
		members, err := writeMembers(ctx, tx, routineID, spec.ExerciseIDs)
		if err != nil {
			return err
		}
		r.Exercises = members
		out = toRoutineView(r, members)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("routine updated", zap.Uint("routine_id", routineID), zap.Int("exercises", len(out.Exercises)))
	return out, nil
}

// DeleteRoutine 成员行物理删除，routine 行只打软删标记
func (s *RoutineService) DeleteRoutine(ctx context.Context, routineID uint) error {
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		if _, err := findRoutine(ctx, tx, routineID); err != nil {
			return err
		}
		if _, err := tx.RoutineExercises().DeleteByRoutine(ctx, routineID); err != nil {
			return fmt.Errorf("clear routine %d exercises: %w", routineID, err)
		}
		if err := tx.Routines().SoftDelete(ctx, routineID); err != nil {
			return fmt.Errorf("soft delete routine %d: %w", routineID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("routine deleted", zap.Uint("routine_id", routineID))
	return nil
}

// CreateRoutineWithExercise 先建 routine 再在 order 位置追加一个运动。
// 两步在同一事务内，第二步失败时 routine 也会回滚。
func (s *RoutineService) CreateRoutineWithExercise(ctx context.Context, spec RoutineSpec, userID, exerciseID uint, order int) (*RoutineView, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	var out *RoutineView
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		created, err := createRoutine(ctx, tx, spec, userID)
		if err != nil {
			return err
		}
		if err := insertMember(ctx, tx, created.ID, exerciseID, order); err != nil {
			return err
		}
		out, err = routineDetails(ctx, tx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("routine created with exercise",
		zap.Uint("routine_id", out.ID),
		zap.Uint("exercise_id", exerciseID),
		zap.Int("order", order),
	)
	return out, nil
}

// AddExerciseToRoutine 在 order 位置插入；order 越界时落在两端，后续成员顺延
func (s *RoutineService) AddExerciseToRoutine(ctx context.Context, routineID, exerciseID uint, order int) (*RoutineView, error) {
	var out *RoutineView
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		if _, err := findRoutine(ctx, tx, routineID); err != nil {
			return err
		}
		if err := insertMember(ctx, tx, routineID, exerciseID, order); err != nil {
			return err
		}
		v, err := routineDetails(ctx, tx, routineID)
		out = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveExerciseFromRoutine 删除一个成员并把剩余成员的 order 压缩回 0..n-1
func (s *RoutineService) RemoveExerciseFromRoutine(ctx context.Context, routineID, memberID uint) (*RoutineView, error) {
	var out *RoutineView
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		r, err := findRoutine(ctx, tx, routineID)
		if err != nil {
			return err
		}
		members, err := tx.RoutineExercises().FindByRoutine(ctx, routineID)
		if err != nil {
			return fmt.Errorf("load routine %d exercises: %w", routineID, err)
		}
		kept := make([]domain.RoutineExercise, 0, len(members))
		found := false
		for _, m := range members {
			if m.ID == memberID {
				found = true
				continue
			}
			kept = append(kept, m)
		}
		if !found {
			return fmt.Errorf("%w: id=%d routine=%d", domain.ErrRoutineExerciseNotFound, memberID, routineID)
		}
		if err := tx.RoutineExercises().Delete(ctx, memberID); err != nil {
			return fmt.Errorf("delete routine exercise %d: %w", memberID, err)
		}
		for i := range kept {
			if kept[i].Order == i {
				continue
			}
			if err := tx.RoutineExercises().UpdateOrder(ctx, kept[i].ID, i); err != nil {
				return fmt.Errorf("reorder routine exercise %d: %w", kept[i].ID, err)
			}
			kept[i].Order = i
		}
		out = toRoutineView(r, kept)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateSpec(spec RoutineSpec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("%w: routine name is required", domain.ErrInvalid)
	}
	return nil
}

func createRoutine(ctx context.Context, tx domain.Store, spec RoutineSpec, userID uint) (*RoutineView, error) {
	if _, err := findUser(ctx, tx, userID); err != nil {
		return nil, err
	}
	r := &domain.Routine{Name: spec.Name, Description: spec.Description, UserID: userID}
	if err := tx.Routines().Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	members, err := writeMembers(ctx, tx, r.ID, spec.ExerciseIDs)
	if err != nil {
		return nil, err
	}
	r.Exercises = members
	return toRoutineView(r, members), nil
}

// writeMembers 按数组顺序写入成员，order = 下标
func writeMembers(ctx context.Context, tx domain.Store, routineID uint, exerciseIDs []uint) ([]domain.RoutineExercise, error) {
	members := make([]domain.RoutineExercise, 0, len(exerciseIDs))
	for i, id := range exerciseIDs {
		ex, err := findExercise(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		m := domain.RoutineExercise{RoutineID: routineID, ExerciseID: ex.ID, Order: i}
		if err := tx.RoutineExercises().Create(ctx, &m); err != nil {
			return nil, fmt.Errorf("create routine exercise: %w", err)
		}
		m.Exercise = ex
		members = append(members, m)
	}
	return members, nil
}

func insertMember(ctx context.Context, tx domain.Store, routineID, exerciseID uint, order int) error {
	ex, err := findExercise(ctx, tx, exerciseID)
	if err != nil {
		return err
	}
	members, err := tx.RoutineExercises().FindByRoutine(ctx, routineID)
	if err != nil {
		return fmt.Errorf("load routine %d exercises: %w", routineID, err)
	}
	if order < 0 {
		order = 0
	}
	if order > len(members) {
		order = len(members)
	}
	// 从尾部开始顺延，避免中间态出现重复 order
	for i := len(members) - 1; i >= order; i-- {
		if err := tx.RoutineExercises().UpdateOrder(ctx, members[i].ID, i+1); err != nil {
			return fmt.Errorf("shift routine exercise %d: %w", members[i].ID, err)
		}
	}
	m := domain.RoutineExercise{RoutineID: routineID, ExerciseID: ex.ID, Order: order}
	if err := tx.RoutineExercises().Create(ctx, &m); err != nil {
		return fmt.Errorf("create routine exercise: %w", err)
	}
	return nil
}

func routineDetails(ctx context.Context, s domain.Store, routineID uint) (*RoutineView, error) {
	r, err := findRoutine(ctx, s, routineID)
	if err != nil {
		return nil, err
	}
	members, err := s.RoutineExercises().FindByRoutine(ctx, routineID)
	if err != nil {
		return nil, fmt.Errorf("load routine %d exercises: %w", routineID, err)
	}
	return toRoutineView(r, members), nil
}
