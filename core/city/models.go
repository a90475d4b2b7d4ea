package city

import "github.com/pkg/errors"

var ErrNotFound = errors.New("city not found")

// City is a read-only reference record locations point at.
type City struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type (
	Repository interface {
		QueryAllCities() ([]City, error)
		GetCityByID(id int) (City, error)
	}

	Service interface {
		QueryAll() ([]City, error)
		GetByID(id int) (City, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll() ([]City, error) {
	return svc.repo.QueryAllCities()
}

func (svc *service) GetByID(id int) (City, error) {
	return svc.repo.GetCityByID(id)
}
