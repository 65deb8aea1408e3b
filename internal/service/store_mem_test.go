package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"synergym-api/internal/domain"
)

// memStore 测试用内存 Store；Transaction 失败时恢复快照
type memStore struct{ d *memData }

type memData struct {
	seq       uint
	users     map[uint]domain.User
	exercises map[uint]domain.Exercise
	routines  map[uint]domain.Routine
	members   map[uint]domain.RoutineExercise
	likes     map[uint]domain.ExerciseLike

	routineListCalls int
	memberLoadCalls  int
}

func newMemStore() *memStore {
	return &memStore{d: &memData{
		users:     map[uint]domain.User{},
		exercises: map[uint]domain.Exercise{},
		routines:  map[uint]domain.Routine{},
		members:   map[uint]domain.RoutineExercise{},
		likes:     map[uint]domain.ExerciseLike{},
	}}
}

func (d *memData) next() uint { d.seq++; return d.seq }

func (d *memData) clone() *memData {
	c := *d
	c.users = map[uint]domain.User{}
	for k, v := range d.users {
		c.users[k] = v
	}
	c.exercises = map[uint]domain.Exercise{}
	for k, v := range d.exercises {
		c.exercises[k] = v
	}
	c.routines = map[uint]domain.Routine{}
	for k, v := range d.routines {
		c.routines[k] = v
	}
	c.members = map[uint]domain.RoutineExercise{}
	for k, v := range d.members {
		c.members[k] = v
	}
	c.likes = map[uint]domain.ExerciseLike{}
	for k, v := range d.likes {
		c.likes[k] = v
	}
	return &c
}

func (s *memStore) Users() domain.UserRepository                       { return memUsers{s.d} }
func (s *memStore) Exercises() domain.ExerciseRepository               { return memExercises{s.d} }
func (s *memStore) Routines() domain.RoutineRepository                 { return memRoutines{s.d} }
func (s *memStore) RoutineExercises() domain.RoutineExerciseRepository { return memMembers{s.d} }
func (s *memStore) Likes() domain.ExerciseLikeRepository               { return memLikes{s.d} }

func (s *memStore) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	snapshot := s.d.clone()
	if err := fn(s); err != nil {
		*s.d = *snapshot
		return err
	}
	return nil
}

// seed helpers

func (s *memStore) addUser(email string) uint {
	id := s.d.next()
	s.d.users[id] = domain.User{ID: id, Email: email, Name: email, CreatedAt: time.Now()}
	return id
}

func (s *memStore) addExercise(name string) uint {
	id := s.d.next()
	s.d.exercises[id] = domain.Exercise{ID: id, Name: name, Category: "Strength"}
	return id
}

func (s *memStore) memberRows(routineID uint) int {
	n := 0
	for _, m := range s.d.members {
		if m.RoutineID == routineID {
			n++
		}
	}
	return n
}

// users

type memUsers struct{ d *memData }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	for _, x := range r.d.users {
		if x.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	u.ID = r.d.next()
	u.CreatedAt = time.Now()
	r.d.users[u.ID] = *u
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) List(_ context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	var all []domain.User
	for _, u := range r.d.users {
		if q == "" || strings.Contains(u.Email, q) || strings.Contains(u.Name, q) {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// exercises

type memExercises struct{ d *memData }

func (r memExercises) FindByID(_ context.Context, id uint) (*domain.Exercise, error) {
	e, ok := r.d.exercises[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r memExercises) List(_ context.Context, f domain.ExerciseFilter) ([]domain.Exercise, int64, error) {
	var all []domain.Exercise
	for _, e := range r.d.exercises {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.Query != "" && !strings.Contains(e.Name, f.Query) {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if f.Offset > len(all) {
		f.Offset = len(all)
	}
	end := f.Offset + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[f.Offset:end], total, nil
}

func (r memExercises) Count(_ context.Context) (int64, error) { return int64(len(r.d.exercises)), nil }

func (r memExercises) CreateBatch(_ context.Context, items []domain.Exercise) error {
	for i := range items {
		items[i].ID = r.d.next()
		r.d.exercises[items[i].ID] = items[i]
	}
	return nil
}

// routines

type memRoutines struct{ d *memData }

func (r memRoutines) Create(_ context.Context, rt *domain.Routine) error {
	rt.ID = r.d.next()
	row := *rt
	row.Exercises = nil
	r.d.routines[rt.ID] = row
	return nil
}

func (r memRoutines) FindByID(_ context.Context, id uint) (*domain.Routine, error) {
	rt, ok := r.d.routines[id]
	if !ok || rt.Deleted {
		return nil, nil
	}
	return &rt, nil
}

func (r memRoutines) list(match func(domain.Routine) bool) []domain.Routine {
	r.d.routineListCalls++
	var out []domain.Routine
	for _, rt := range r.d.routines {
		if rt.Deleted || !match(rt) {
			continue
		}
		rt.Exercises = memMembers{r.d}.sorted(rt.ID)
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memRoutines) FindByUserWithExercises(_ context.Context, userID uint) ([]domain.Routine, error) {
	return r.list(func(rt domain.Routine) bool { return rt.UserID == userID }), nil
}

func (r memRoutines) FindAllWithExercises(_ context.Context) ([]domain.Routine, error) {
	return r.list(func(domain.Routine) bool { return true }), nil
}

func (r memRoutines) FindByNameWithExercises(_ context.Context, name string) ([]domain.Routine, error) {
	return r.list(func(rt domain.Routine) bool { return rt.Name == name }), nil
}

func (r memRoutines) UpdateDetails(_ context.Context, rt *domain.Routine) error {
	row := r.d.routines[rt.ID]
	row.Name = rt.Name
	row.Description = rt.Description
	r.d.routines[rt.ID] = row
	return nil
}

func (r memRoutines) SoftDelete(_ context.Context, id uint) error {
	row := r.d.routines[id]
	row.Deleted = true
	r.d.routines[id] = row
	return nil
}

// routine exercises

type memMembers struct{ d *memData }

func (r memMembers) sorted(routineID uint) []domain.RoutineExercise {
	out := []domain.RoutineExercise{}
	for _, m := range r.d.members {
		if m.RoutineID != routineID {
			continue
		}
		if e, ok := r.d.exercises[m.ExerciseID]; ok {
			m.Exercise = &e
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (r memMembers) Create(_ context.Context, m *domain.RoutineExercise) error {
	m.ID = r.d.next()
	row := *m
	row.Exercise = nil
	r.d.members[m.ID] = row
	return nil
}

func (r memMembers) FindByRoutine(_ context.Context, routineID uint) ([]domain.RoutineExercise, error) {
	r.d.memberLoadCalls++
	return r.sorted(routineID), nil
}

func (r memMembers) DeleteByRoutine(_ context.Context, routineID uint) (int64, error) {
	var n int64
	for id, m := range r.d.members {
		if m.RoutineID == routineID {
			delete(r.d.members, id)
			n++
		}
	}
	return n, nil
}

func (r memMembers) Delete(_ context.Context, id uint) error {
	delete(r.d.members, id)
	return nil
}

func (r memMembers) UpdateOrder(_ context.Context, id uint, order int) error {
	m := r.d.members[id]
	m.Order = order
	r.d.members[id] = m
	return nil
}

// likes

type memLikes struct{ d *memData }

func (r memLikes) Create(_ context.Context, l *domain.ExerciseLike) error {
	for _, x := range r.d.likes {
		if x.UserID == l.UserID && x.ExerciseID == l.ExerciseID {
			return domain.ErrAlreadyLiked
		}
	}
	l.ID = r.d.next()
	l.CreatedAt = time.Now()
	r.d.likes[l.ID] = *l
	return nil
}

func (r memLikes) Exists(_ context.Context, userID, exerciseID uint) (bool, error) {
	for _, x := range r.d.likes {
		if x.UserID == userID && x.ExerciseID == exerciseID {
			return true, nil
		}
	}
	return false, nil
}

func (r memLikes) Delete(_ context.Context, userID, exerciseID uint) (int64, error) {
	var n int64
	for id, x := range r.d.likes {
		if x.UserID == userID && x.ExerciseID == exerciseID {
			delete(r.d.likes, id)
			n++
		}
	}
	return n, nil
}

func (r memLikes) filter(match func(domain.ExerciseLike) bool) []domain.ExerciseLike {
	var out []domain.ExerciseLike
	for _, x := range r.d.likes {
		if match(x) {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memLikes) FindByUser(_ context.Context, userID uint) ([]domain.ExerciseLike, error) {
	return r.filter(func(x domain.ExerciseLike) bool { return x.UserID == userID }), nil
}

func (r memLikes) FindByExercise(_ context.Context, exerciseID uint) ([]domain.ExerciseLike, error) {
	return r.filter(func(x domain.ExerciseLike) bool { return x.ExerciseID == exerciseID }), nil
}
