package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repo for development and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	users    map[string]User
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:    make(map[string]User),
		profiles: make(map[string]Profile),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, user User, contact ContactDetails) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	r.profiles[user.ID] = Profile{
		User:           user,
		ContactDetails: &contact,
		Experiences:    []Experience{},
		Education:      []Education{},
		Skills:         []Skill{},
		Certifications: []Certification{},
		Projects:       []Project{},
		References:     []Reference{},
	}
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) Activate(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, user := range r.users {
		if user.Email != email {
			continue
		}
		if user.IsActive {
			return true, nil
		}
		user.IsActive = true
		user.UpdatedAt = time.Now().UTC()
		r.users[id] = user
		if profile, ok := r.profiles[id]; ok {
			profile.User = user
			r.profiles[id] = profile
		}
		return false, nil
	}
	return false, ErrNotFound
}

func (r *MemoryRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	profile.User = r.users[userID]
	return profile, nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	if update.Email != nil && *update.Email != user.Email {
		for id, other := range r.users {
			if id != userID && other.Email == *update.Email {
				return ErrEmailTaken
			}
		}
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[userID] = user

	profile := r.profiles[userID]
	profile.User = user
	if update.ContactDetails != nil {
		contact := *update.ContactDetails
		profile.ContactDetails = &contact
	}
	if update.Experiences != nil {
		profile.Experiences = append([]Experience{}, *update.Experiences...)
	}
	if update.Education != nil {
		profile.Education = append([]Education{}, *update.Education...)
	}
	if update.Skills != nil {
		profile.Skills = append([]Skill{}, *update.Skills...)
	}
	if update.Certifications != nil {
		profile.Certifications = append([]Certification{}, *update.Certifications...)
	}
	if update.Projects != nil {
		profile.Projects = append([]Project{}, *update.Projects...)
	}
	if update.References != nil {
		profile.References = append([]Reference{}, *update.References...)
	}
	r.profiles[userID] = profile
	return nil
}

func (r *MemoryRepo) UpsertResumeFile(ctx context.Context, userID string, file ResumeFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	file.ID = newID(file.ID)
	file.UploadedAt = time.Now().UTC()
	profile.ResumeFile = &file
	r.profiles[userID] = profile
	return nil
}
