package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
)

type fakeUserRepo struct {
	mu             sync.Mutex
	users          map[string]*models.User
	err            error
	departmentSets int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SetDepartment(_ context.Context, u *models.User, department string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.departmentSets++
	if r.err != nil {
		return r.err
	}
	cp := *u
	cp.Department = &department
	r.users[u.ID] = &cp
	u.Department = &department
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset uint64, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if int(offset) >= len(all) {
		return []*models.User{}, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeSessionRepo struct {
	mu             sync.Mutex
	rows           map[string]*models.Session
	departmentSets int
}

func newFakeSessionRepo(ids ...string) *fakeSessionRepo {
	r := &fakeSessionRepo{rows: make(map[string]*models.Session)}
	for _, id := range ids {
		r.rows[id] = &models.Session{ID: id, ExpiresAt: time.Now().Add(time.Hour)}
	}
	return r
}

func (r *fakeSessionRepo) Create(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return apperrors.ErrTokenInvalid
	}
	s.RevokedAt = &at
	s.AdminDepartment = nil
	return nil
}

func (r *fakeSessionRepo) SetAdminDepartment(_ context.Context, id string, department *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.departmentSets++
	s, ok := r.rows[id]
	if !ok || s.RevokedAt != nil {
		return apperrors.ErrTokenRevoked
	}
	s.AdminDepartment = department
	return nil
}

type fakeContentRepo struct {
	mu         sync.Mutex
	items      map[models.Category][]*models.ContentItem
	calls      []string
	findAllErr error
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: make(map[models.Category][]*models.ContentItem)}
}

func (r *fakeContentRepo) add(item *models.ContentItem) {
	r.items[item.Category] = append(r.items[item.Category], item)
}

func (r *fakeContentRepo) record(call string) {
	r.calls = append(r.calls, call)
}

func copyItems(items []*models.ContentItem) []*models.ContentItem {
	out := make([]*models.ContentItem, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	return out
}

func (r *fakeContentRepo) FindAll(_ context.Context, c models.Category) ([]*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("FindAll")
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	return copyItems(r.items[c]), nil
}

func (r *fakeContentRepo) FindByDepartment(_ context.Context, c models.Category, dept string) ([]*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("FindByDepartment")
	var out []*models.ContentItem
	for _, it := range r.items[c] {
		if it.Department == dept {
			out = append(out, it)
		}
	}
	out = copyItems(out)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAtOrZero().After(out[j].CreatedAtOrZero())
	})
	return out, nil
}

func (r *fakeContentRepo) FindByID(_ context.Context, c models.Category, id string) (*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("FindByID")
	for _, it := range r.items[c] {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, apperrors.ErrContentNotFound
}

func (r *fakeContentRepo) Create(_ context.Context, item *models.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Create")
	cp := *item
	r.items[item.Category] = append(r.items[item.Category], &cp)
	return nil
}

func (r *fakeContentRepo) Update(_ context.Context, item *models.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Update")
	for _, it := range r.items[item.Category] {
		if it.ID == item.ID {
			it.Title, it.Content, it.Department = item.Title, item.Content, item.Department
			return nil
		}
	}
	return apperrors.ErrContentNotFound
}

func (r *fakeContentRepo) Delete(_ context.Context, c models.Category, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Delete")
	items := r.items[c]
	for i, it := range items {
		if it.ID == id {
			r.items[c] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrContentNotFound
}

func (r *fakeContentRepo) IncrementViewCount(_ context.Context, c models.Category, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("IncrementViewCount")
	for _, it := range r.items[c] {
		if it.ID == id {
			it.ViewCount++
			return it.ViewCount, nil
		}
	}
	return 0, apperrors.ErrContentNotFound
}

func (r *fakeContentRepo) TopByViewCount(_ context.Context, c models.Category, dept string, limit int) ([]*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ContentItem
	for _, it := range r.items[c] {
		if dept == "" || it.Department == dept {
			out = append(out, it)
		}
	}
	out = copyItems(out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ViewCount > out[j].ViewCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeFeedbackRepo struct {
	mu    sync.Mutex
	items []*models.Feedback
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeFeedbackRepo) FindAll(_ context.Context) ([]*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Feedback, 0, len(r.items))
	for _, f := range r.items {
		cp := *f
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFeedbackRepo) FindByID(_ context.Context, id string) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, apperrors.ErrFeedbackNotFound
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.items {
		if f.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrFeedbackNotFound
}

func (r *fakeFeedbackRepo) SetResponse(_ context.Context, id, response string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.ID == id {
			f.Response = &response
			return nil
		}
	}
	return apperrors.ErrFeedbackNotFound
}

type fakeVerifiedRepo struct {
	ids map[string]bool
}

func (r *fakeVerifiedRepo) ExistsByStudentID(_ context.Context, id string) (bool, error) {
	return r.ids[id], nil
}

func (r *fakeVerifiedRepo) Create(_ context.Context, s *models.VerifiedStudent) error {
	if r.ids[s.StudentID] {
		return apperrors.ErrStudentIDAlreadyExists
	}
	r.ids[s.StudentID] = true
	return nil
}

// fakeProvider is a scripted identity.Provider
type fakeProvider struct {
	session     *identity.Session
	signInErr   error
	signUpErr   error
	signOutErr  error
	inUse       bool
	inUseErr    error
	signedOut   []string
	signUpCalls int
}

func (p *fakeProvider) SignIn(context.Context, string, string) (*identity.Session, error) {
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	return p.session, nil
}

func (p *fakeProvider) SignUp(context.Context, string, string, string) (*identity.Session, error) {
	p.signUpCalls++
	if p.signUpErr != nil {
		return nil, p.signUpErr
	}
	return p.session, nil
}

func (p *fakeProvider) SignOut(_ context.Context, id string) error {
	if p.signOutErr != nil {
		return p.signOutErr
	}
	p.signedOut = append(p.signedOut, id)
	return nil
}

func (p *fakeProvider) EmailInUse(context.Context, string) (bool, error) {
	return p.inUse, p.inUseErr
}

func (p *fakeProvider) CurrentSession(context.Context, string) (*identity.Session, error) {
	return p.session, nil
}

func (p *fakeProvider) Subscribe(func(identity.Event)) func() {
	return func() {}
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendFeedbackResponseEmail(toEmail, _, _, _ string) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func studentSession(id string) *identity.Session {
	return &identity.Session{ID: "s-" + id, AccountID: id, Email: id + "@yu.ac.kr", DisplayName: "학생" + id, Role: models.RoleStudent}
}
