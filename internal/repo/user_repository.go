package repo

import "github.com/rogerio-castellano/order-tracker/internal/models"

type UserRepository interface {
	CreateUser(u models.User) (models.User, error)
	GetByID(id int) (models.User, error)
	GetByEmail(email string) (models.User, error)
	GetAll() ([]models.User, error)
	Update(u models.User) (models.User, error)
	Delete(id int) error
}
