package models

// Customer is seed data in the operational store; the API never mutates it.
type Customer struct {
	CustomerID int64  `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	Name       string `gorm:"column:name;not null" json:"name"`
	Email      string `gorm:"column:email" json:"email"`
	City       string `gorm:"column:city" json:"city"`
	Country    string `gorm:"column:country" json:"country"`
	Birthdate  string `gorm:"column:birthdate" json:"birthdate"`
	Active     bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (Customer) TableName() string { return "customers" }
