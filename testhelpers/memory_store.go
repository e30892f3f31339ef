package testhelpers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"adminportal/internal/models"
	"adminportal/internal/repositories"
)

// MemoryStore is an in-memory credential store for end-to-end tests. It
// enforces the same email uniqueness the database index does and returns the
// repository sentinel errors. Records are copied on the way in and out.
type MemoryStore struct {
	mu        sync.Mutex
	now       func() time.Time
	nextID    int64
	employees map[int64]models.Employee
	trainers  map[int64]models.Trainer
	courses   map[int64]models.Course
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:       time.Now,
		employees: make(map[int64]models.Employee),
		trainers:  make(map[int64]models.Trainer),
		courses:   make(map[int64]models.Course),
	}
}

func (s *MemoryStore) Employees() repositories.EmployeeRepository { return employeeStore{s} }
func (s *MemoryStore) Trainers() repositories.TrainerRepository   { return trainerStore{s} }
func (s *MemoryStore) Courses() repositories.CourseRepository     { return courseStore{s} }

// EmployeeCount is used to assert that a rejected signup left no row behind.
func (s *MemoryStore) EmployeeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.employees)
}

// Trainer returns the stored trainer row, including its credential.
func (s *MemoryStore) Trainer(id int64) (models.Trainer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trainers[id]
	return t, ok
}

// Employee returns the stored employee row, including its hash.
func (s *MemoryStore) Employee(email string) (models.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employees {
		if e.Email == email {
			return e, true
		}
	}
	return models.Employee{}, false
}

func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

type employeeStore struct{ s *MemoryStore }

func (r employeeStore) Create(_ context.Context, employee *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Email == employee.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	employee.ID = r.s.id()
	employee.CreatedAt = r.s.now()
	r.s.employees[employee.ID] = *employee
	return nil
}

func (r employeeStore) GetByID(_ context.Context, id int64) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &e, nil
}

func (r employeeStore) GetByEmail(_ context.Context, email string) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Email == email {
			return &e, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r employeeStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r employeeStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return repositories.ErrNotFound
	}
	e.PasswordHash = passwordHash
	r.s.employees[id] = e
	return nil
}

func (r employeeStore) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return repositories.ErrNotFound
	}
	e.IsActive = active
	r.s.employees[id] = e
	return nil
}

type trainerStore struct{ s *MemoryStore }

// withCourseName fills the joined course name the way the SQL select does.
func (r trainerStore) withCourseName(t models.Trainer) *models.Trainer {
	t.CourseName = nil
	if t.CourseID != nil {
		if c, ok := r.s.courses[*t.CourseID]; ok {
			name := c.CourseName
			t.CourseName = &name
		}
	}
	return &t
}

func (r trainerStore) sorted(keep func(models.Trainer) bool) []*models.Trainer {
	out := make([]*models.Trainer, 0, len(r.s.trainers))
	for _, t := range r.s.trainers {
		if keep(t) {
			out = append(out, r.withCourseName(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r trainerStore) List(_ context.Context) ([]*models.Trainer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(models.Trainer) bool { return true }), nil
}

func (r trainerStore) GetByID(_ context.Context, id int64) (*models.Trainer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.trainers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.withCourseName(t), nil
}

func (r trainerStore) GetByEmail(_ context.Context, email string) (*models.Trainer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.trainers {
		if t.Email == email {
			return r.withCourseName(t), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r trainerStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r trainerStore) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.trainers[id]
	return ok, nil
}

func (r trainerStore) emailTaken(email string, except int64) bool {
	for id, t := range r.s.trainers {
		if id != except && t.Email == email {
			return true
		}
	}
	return false
}

func (r trainerStore) Create(_ context.Context, trainer *models.Trainer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(trainer.Email, 0) {
		return repositories.ErrDuplicateEmail
	}
	now := r.s.now()
	trainer.ID = r.s.id()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now
	r.s.trainers[trainer.ID] = *trainer
	return nil
}

func (r trainerStore) Update(_ context.Context, trainer *models.Trainer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.trainers[trainer.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.emailTaken(trainer.Email, trainer.ID) {
		return repositories.ErrDuplicateEmail
	}
	t.Name = trainer.Name
	t.Mobile = trainer.Mobile
	t.Email = trainer.Email
	t.CourseID = trainer.CourseID
	t.Bio = trainer.Bio
	t.UpdatedAt = r.s.now()
	trainer.UpdatedAt = t.UpdatedAt
	r.s.trainers[t.ID] = t
	return nil
}

func (r trainerStore) UpdateCredential(_ context.Context, id int64, credential models.Credential) error {
	return r.modify(id, func(t *models.Trainer) { t.Credential = credential })
}

func (r trainerStore) TouchLastLogin(_ context.Context, id int64) error {
	now := r.s.now()
	return r.modify(id, func(t *models.Trainer) { t.LastLoginAt = &now })
}

func (r trainerStore) SetActive(_ context.Context, id int64, active bool) error {
	return r.modify(id, func(t *models.Trainer) { t.IsActive = active })
}

func (r trainerStore) SetProfileImage(_ context.Context, id int64, url string) error {
	return r.modify(id, func(t *models.Trainer) { t.ProfileImageURL = &url })
}

func (r trainerStore) ListStaleTemporary(_ context.Context, issuedBefore time.Time) ([]*models.Trainer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(t models.Trainer) bool {
		temp, ok := t.Credential.(models.TemporaryCredential)
		return ok && t.IsActive && temp.IssuedAt.Before(issuedBefore)
	}), nil
}

func (r trainerStore) modify(id int64, fn func(*models.Trainer)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.trainers[id]
	if !ok {
		return repositories.ErrNotFound
	}
	fn(&t)
	t.UpdatedAt = r.s.now()
	r.s.trainers[id] = t
	return nil
}

type courseStore struct{ s *MemoryStore }

func (r courseStore) withTrainerName(c models.Course) *models.Course {
	c.TrainerName = nil
	if c.TrainerID != nil {
		if t, ok := r.s.trainers[*c.TrainerID]; ok {
			name := t.Name
			c.TrainerName = &name
		}
	}
	return &c
}

func (r courseStore) List(_ context.Context) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		if c.IsActive {
			out = append(out, r.withTrainerName(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r courseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.withTrainerName(c), nil
}

func (r courseStore) GetActiveByID(ctx context.Context, id int64) (*models.Course, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

func (r courseStore) Create(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	course.ID = r.s.id()
	course.IsActive = true
	course.CreatedAt = now
	course.UpdatedAt = now
	r.s.courses[course.ID] = *course
	return nil
}

func (r courseStore) Update(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[course.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	c.CourseName = course.CourseName
	c.CourseFees = course.CourseFees
	c.CourseDuration = course.CourseDuration
	c.TrainerID = course.TrainerID
	c.UpdatedAt = r.s.now()
	r.s.courses[c.ID] = c

	course.IsActive = c.IsActive
	course.CreatedAt = c.CreatedAt
	course.UpdatedAt = c.UpdatedAt
	return nil
}

func (r courseStore) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.IsActive = false
	c.UpdatedAt = r.s.now()
	r.s.courses[id] = c
	return nil
}
