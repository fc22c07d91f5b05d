package domain

// Wallet is a container for expenses within a workspace, denominated in a
// single currency.
type Wallet struct {
	WalletID    string `json:"walletID" db:"wallet_id"`
	WorkspaceID string `json:"workspaceID" db:"workspace_id"`
	Name        string `json:"name" db:"name"`
	Currency    string `json:"currency" db:"currency"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	AuditFields
}
