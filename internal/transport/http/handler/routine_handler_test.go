package handler

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"synergym-api/internal/domain"
	"synergym-api/internal/service"
	resp "synergym-api/internal/transport/http/response"
)

type stubRoutineService struct {
	lastSpec    service.RoutineSpec
	lastUser    uint
	lastRoutine uint
	lastOrder   int
	byName      string
	allCalled   bool
	err         error
}

func (s *stubRoutineService) view(id uint) *service.RoutineView {
	v := &service.RoutineView{ID: id, Name: s.lastSpec.Name, UserID: s.lastUser, Exercises: []service.RoutineExerciseView{}}
	for i, ex := range s.lastSpec.ExerciseIDs {
		v.Exercises = append(v.Exercises, service.RoutineExerciseView{RoutineID: id, ExerciseID: ex, Order: i})
	}
	return v
}

func (s *stubRoutineService) CreateRoutine(_ context.Context, spec service.RoutineSpec, userID uint) (*service.RoutineView, error) {
	s.lastSpec, s.lastUser = spec, userID
	if s.err != nil {
		return nil, s.err
	}
	return s.view(1), nil
}

func (s *stubRoutineService) CreateRoutineWithExercise(_ context.Context, spec service.RoutineSpec, userID, exerciseID uint, order int) (*service.RoutineView, error) {
	s.lastSpec, s.lastUser, s.lastOrder = spec, userID, order
	return s.view(2), s.err
}

func (s *stubRoutineService) GetRoutineDetails(_ context.Context, id uint) (*service.RoutineView, error) {
	s.lastRoutine = id
	if s.err != nil {
		return nil, s.err
	}
	return s.view(id), nil
}

func (s *stubRoutineService) GetRoutinesByUser(_ context.Context, userID uint) ([]service.RoutineView, error) {
	s.lastUser = userID
	return []service.RoutineView{*s.view(1)}, s.err
}

func (s *stubRoutineService) GetAllRoutines(context.Context) ([]service.RoutineView, error) {
	s.allCalled = true
	return []service.RoutineView{}, nil
}

func (s *stubRoutineService) GetRoutinesByName(_ context.Context, name string) ([]service.RoutineView, error) {
	s.byName = name
	return []service.RoutineView{}, nil
}

func (s *stubRoutineService) UpdateRoutine(_ context.Context, id uint, spec service.RoutineSpec) (*service.RoutineView, error) {
	s.lastRoutine, s.lastSpec = id, spec
	return s.view(id), s.err
}

func (s *stubRoutineService) DeleteRoutine(_ context.Context, id uint) error {
	s.lastRoutine = id
	return s.err
}

func (s *stubRoutineService) AddExerciseToRoutine(_ context.Context, id, _ uint, order int) (*service.RoutineView, error) {
	s.lastRoutine, s.lastOrder = id, order
	return s.view(id), s.err
}

func (s *stubRoutineService) RemoveExerciseFromRoutine(_ context.Context, id, _ uint) (*service.RoutineView, error) {
	s.lastRoutine = id
	return s.view(id), s.err
}

func TestRoutineHandler_Create(t *testing.T) {
	svc := &stubRoutineService{}
	r := newEngine(NewRoutineHandler(svc))

	env := call(t, r, http.MethodPost, "/api/v1/users/5/routines",
		`{"name":"Leg day","description":"lower body","exerciseIds":[3,1,2]}`)
	assert.Equal(t, resp.CodeOK, env.Code)
	assert.EqualValues(t, 5, svc.lastUser)
	assert.Equal(t, []uint{3, 1, 2}, svc.lastSpec.ExerciseIDs)

	v := decode[service.RoutineView](t, env.Data)
	assert.Len(t, v.Exercises, 3)
	assert.EqualValues(t, 3, v.Exercises[0].ExerciseID)
}

func TestRoutineHandler_CreateValidation(t *testing.T) {
	r := newEngine(NewRoutineHandler(&stubRoutineService{}))

	env := call(t, r, http.MethodPost, "/api/v1/users/5/routines", `{"exerciseIds":[1]}`)
	assert.Equal(t, resp.CodeBadRequest, env.Code)

	env = call(t, r, http.MethodPost, "/api/v1/users/x/routines", `{"name":"a"}`)
	assert.Equal(t, resp.CodeBadRequest, env.Code)
}

func TestRoutineHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: id=9", domain.ErrUserNotFound), resp.CodeNotFound},
		{fmt.Errorf("%w: id=8", domain.ErrExerciseNotFound), resp.CodeNotFound},
		{fmt.Errorf("%w: routine name is required", domain.ErrInvalid), resp.CodeBadRequest},
	}
	for _, tc := range cases {
		r := newEngine(NewRoutineHandler(&stubRoutineService{err: tc.err}))
		env := call(t, r, http.MethodPost, "/api/v1/users/9/routines", `{"name":"x","exerciseIds":[8]}`)
		assert.Equal(t, tc.code, env.Code, tc.err.Error())
	}
}

func TestRoutineHandler_ListByName(t *testing.T) {
	svc := &stubRoutineService{}
	r := newEngine(NewRoutineHandler(svc))

	call(t, r, http.MethodGet, "/api/v1/routines?name=Leg%20day", "")
	assert.Equal(t, "Leg day", svc.byName)
	assert.False(t, svc.allCalled)

	env := call(t, r, http.MethodGet, "/api/v1/routines", "")
	assert.True(t, svc.allCalled)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestRoutineHandler_UpdateAndDelete(t *testing.T) {
	svc := &stubRoutineService{}
	r := newEngine(NewRoutineHandler(svc))

	env := call(t, r, http.MethodPut, "/api/v1/routines/7", `{"name":"Push","exerciseIds":[4]}`)
	assert.Equal(t, resp.CodeOK, env.Code)
	assert.EqualValues(t, 7, svc.lastRoutine)
	assert.Equal(t, "Push", svc.lastSpec.Name)

	env = call(t, r, http.MethodDelete, "/api/v1/routines/7", "")
	assert.Equal(t, resp.CodeOK, env.Code)
	assert.JSONEq(t, `{"deleted":true}`, string(env.Data))

	svc.err = domain.ErrRoutineNotFound
	env = call(t, r, http.MethodDelete, "/api/v1/routines/7", "")
	assert.Equal(t, resp.CodeNotFound, env.Code)
}

func TestRoutineHandler_MemberOrderDefaultsToTail(t *testing.T) {
	svc := &stubRoutineService{}
	r := newEngine(NewRoutineHandler(svc))

	call(t, r, http.MethodPost, "/api/v1/routines/3/exercises", `{"exerciseId":11}`)
	assert.Equal(t, math.MaxInt32, svc.lastOrder)

	call(t, r, http.MethodPost, "/api/v1/routines/3/exercises", `{"exerciseId":11,"order":0}`)
	assert.Equal(t, 0, svc.lastOrder)

	call(t, r, http.MethodPost, "/api/v1/users/2/routines/with-exercise", `{"name":"x","exerciseId":11,"order":1}`)
	assert.Equal(t, 1, svc.lastOrder)
	assert.EqualValues(t, 2, svc.lastUser)

	env := call(t, r, http.MethodDelete, "/api/v1/routines/3/exercises/40", "")
	assert.Equal(t, resp.CodeOK, env.Code)
	assert.EqualValues(t, 3, svc.lastRoutine)
}
