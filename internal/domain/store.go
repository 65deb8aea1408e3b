package domain

import "context"

// Store 聚合各实体仓储；Transaction 内的 tx Store 共享同一个事务
type Store interface {
	Users() UserRepository
	Exercises() ExerciseRepository
	Routines() RoutineRepository
	RoutineExercises() RoutineExerciseRepository
	Likes() ExerciseLikeRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Models 自动迁移的模型列表
func Models() []any {
	return []any{&User{}, &Exercise{}, &Routine{}, &RoutineExercise{}, &ExerciseLike{}}
}
