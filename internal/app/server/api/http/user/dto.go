package user

type registerRequest struct {
	Login     string `json:"login" minLength:"3" maxLength:"32" doc:"Account login"`
	Password  string `json:"password" minLength:"8" doc:"Account password"`
	CompanyID string `json:"company_id,omitempty" doc:"Tenant the user belongs to"`
}

type registerInput struct {
	Body registerRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginInput struct {
	Body loginRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token     string `json:"token"`
	CompanyID string `json:"company_id"`
}
