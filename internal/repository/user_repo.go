package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fundbase/docportal/internal/db"
	"github.com/fundbase/docportal/internal/models"
	"github.com/parisxmas/OxiDB/go/oxidb"
)

const UsersCollection = "_portal_users"

type UserRepo struct {
	pool *db.Pool
}

func NewUserRepo(pool *db.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) EnsureIndexes() error {
	c := r.pool.Get()
	if err := c.CreateUniqueIndex(UsersCollection, "email"); err != nil {
		return err
	}
	return c.CreateIndex(UsersCollection, "role")
}

func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(UsersCollection, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToUser(doc)
}

func (r *UserRepo) FindByID(id string) (*models.User, error) {
	c := r.pool.Get()
	doc, err := c.FindOne(UsersCollection, map[string]any{"_id": toNumericID(id)})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToUser(doc)
}

// FindStartups returns every startup-role user, most recent login first.
func (r *UserRepo) FindStartups() ([]models.User, error) {
	c := r.pool.Get()
	docs, err := c.Find(UsersCollection, map[string]any{"role": models.RoleStartup}, &oxidb.FindOptions{
		Sort: map[string]any{"lastLogin": -1},
	})
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		u, err := docToUser(d)
		if err != nil {
			continue
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepo) Create(user *models.User) (string, error) {
	c := r.pool.Get()
	doc := userToDoc(user)
	result, err := c.Insert(UsersCollection, doc)
	if err != nil {
		return "", err
	}
	return extractID(result), nil
}

func (r *UserRepo) Update(id string, fields map[string]any) error {
	c := r.pool.Get()
	_, err := c.Update(UsersCollection, map[string]any{"_id": toNumericID(id)}, map[string]any{"$set": fields})
	return err
}

func userToDoc(u *models.User) map[string]any {
	data, _ := json.Marshal(u)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToUser(doc map[string]any) (*models.User, error) {
	normalizeID(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal user doc: %w", err)
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}
