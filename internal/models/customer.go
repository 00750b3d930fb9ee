package models

// Customer represents a customer record owned by the backend API.
// JSON tags follow the backend wire contract.
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// CustomerPage holds one page of customer records plus the total number
// of records matching the current filter.
type CustomerPage struct {
	Customers []Customer `json:"data"`
	Total     int64      `json:"total"`
}

// FindByID returns the customer with the given ID from this page, or nil
// when the record is not on the page.
func (p *CustomerPage) FindByID(id int64) *Customer {
	for i := range p.Customers {
		if p.Customers[i].ID == id {
			return &p.Customers[i]
		}
	}
	return nil
}
