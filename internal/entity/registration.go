package entity

// RegistrationForm is the completed registration submitted by a new
// student; it is forwarded to the school office by email.
type RegistrationForm struct {
	UserEmail              string `json:"user_email"`
	FullName               string `json:"full_name" binding:"required"`
	PhoneNumber            string `json:"phone_number" binding:"required"`
	DateOfBirth            string `json:"date_of_birth"`
	Gender                 string `json:"gender"`
	Address                string `json:"address"`
	CourseName             string `json:"course_name"`
	SelectedCourseID       int64  `json:"selected_course_id"`
	PreferredPaymentMethod string `json:"preferred_payment_method"`
	BankName               string `json:"bank_name"`
	BankAccountName        string `json:"bank_account_name"`
	BankAccountNumber      string `json:"bank_account_number"`
}
