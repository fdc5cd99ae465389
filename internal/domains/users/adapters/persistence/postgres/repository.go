package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clearsolutions/user-api/internal/domains/users/domain"
	"github.com/clearsolutions/user-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM. The schema is owned by
// the SQL migrations in internal/platform/migrations; the unique constraints
// there are the authoritative backstop for the service's pre-checks.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;size:319;not null;uniqueIndex"`
	FirstName string    `gorm:"column:first_name;size:30;not null"`
	LastName  string    `gorm:"column:last_name;size:30;not null"`
	BirthDate time.Time `gorm:"column:birth_date;type:date;not null"`
	Address   *string   `gorm:"column:address;size:60"`
	Phone     *string   `gorm:"column:phone;size:14"`
}

func (userRecord) TableName() string { return "users" }

// Save inserts when the ID is unset and overwrites the full row otherwise.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
	} else {
		result := r.db.WithContext(ctx).Model(&userRecord{}).
			Where("id = ?", record.ID).
			Select("email", "first_name", "last_name", "birth_date", "address", "phone").
			Updates(&record)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ports.ErrNotFound
		}
	}
	return r.FindByID(ctx, record.ID)
}

// FindByID fetches a user by identifier.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ExistsByID reports whether a row with the identifier exists.
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByID removes a user permanently.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindAll returns every stored user.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

// ExistsByEmail reports whether any row already holds the email.
func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByPhone reports whether any row holds the phone. NULL phones never match.
func (r *Repository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	if phone == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	record := userRecord{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: user.BirthDate,
	}
	if user.Address != "" {
		address := user.Address
		record.Address = &address
	}
	if user.Phone != "" {
		phone := user.Phone
		record.Phone = &phone
	}
	return record
}

func (r userRecord) toDomain() *domain.User {
	user := &domain.User{
		ID:        r.ID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: domain.DateOnly(r.BirthDate),
	}
	if r.Address != nil {
		user.Address = *r.Address
	}
	if r.Phone != nil {
		user.Phone = *r.Phone
	}
	return user
}
