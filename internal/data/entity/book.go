package entity

type Book struct {
	Base
	Title       string  `db:"title"`
	Author      string  `db:"author"`
	Genre       string  `db:"genre"`
	Description string  `db:"description"`
	Image       string  `db:"image"`
	Price       float64 `db:"price"`
}
