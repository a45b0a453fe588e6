package dto

// --- User Management ---

type AdminCreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Tier        string `json:"tier" validate:"required,oneof=T1 T2 T3 T4 admin"`
	DisplayName string `json:"display_name" validate:"required"`
	CompanyName string `json:"company_name"`
}

// --- System Logs ---

type LogListRequest struct {
	Level  string `query:"level"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type AdminUserListRequest struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Tier  string `query:"tier"`
}

type AdminWalletResponse struct {
	Wallet    *WalletResponse    `json:"wallet"`
	Reconcile *ReconcileResponse `json:"reconcile"`
}
