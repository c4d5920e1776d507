package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/ports"
)

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entities.User
	err     error
	creates int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entities.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return entities.ErrEmailTaken
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	r.creates++
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type memTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*entities.Task
	writes int
	err    error
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[int64]*entities.Task{}}
}

func (r *memTaskRepo) seed(owner uuid.UUID, title string, quadrant entities.Quadrant, due *string) *entities.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t := &entities.Task{ID: r.nextID, Title: title, Quadrant: quadrant, DueDate: due, UserID: owner}
	r.tasks[t.ID] = t
	cp := *t
	return &cp
}

func (r *memTaskRepo) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	task.ID = r.nextID
	cp := *task
	r.tasks[task.ID] = &cp
	r.writes++
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) Update(_ context.Context, id int64, ownerID uuid.UUID, update ports.TaskUpdate) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, entities.ErrTaskNotFound
	}
	if update.Title.Set {
		t.Title = update.Title.Value
	}
	if update.Quadrant.Set {
		t.Quadrant = update.Quadrant.Value
	}
	if update.DueDate.Set {
		t.DueDate = update.DueDate.Value
	}
	if update.Completed.Set {
		t.Completed = update.Completed.Value
	}
	r.writes++
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.UserID != ownerID {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	r.writes++
	return nil
}

func (r *memTaskRepo) List(_ context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*entities.Task{}
	for _, t := range r.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Quadrant != nil && t.Quadrant != *filter.Quadrant {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
