package entity

type Branch struct {
	Base
	Name     string `db:"name"`
	Address  string `db:"address"`
	Phone    string `db:"phone"`
	IsActive bool   `db:"is_active"`
}
