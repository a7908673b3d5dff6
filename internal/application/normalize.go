package application

import "github.com/nvallen/paywise-cli/internal/domain"

// directoryNames builds the email-to-display-name index used to resolve
// transaction counterparties.
func directoryNames(directory []domain.User) map[string]string {
	names := make(map[string]string, len(directory))
	for _, user := range directory {
		if user.Email == "" {
			continue
		}
		names[user.Email] = user.Name
	}
	return names
}

// normalizeTransactions converts backend history records into session
// transactions, resolving counterparty emails to display names. An email
// absent from the directory is kept as-is rather than dropped.
func normalizeTransactions(records []domain.TransactionRecord, names map[string]string) []domain.Transaction {
	transactions := make([]domain.Transaction, 0, len(records))
	for _, record := range records {
		counterparty := record.PeerEmail
		if name, ok := names[record.PeerEmail]; ok && name != "" {
			counterparty = name
		}

		transaction := domain.Transaction{
			ID:        record.ID,
			Direction: record.Direction,
			Amount:    record.Amount,
			Date:      record.Date,
			Status:    record.Status,
		}
		if record.Direction == domain.DirectionSend {
			transaction.Recipient = counterparty
		} else {
			transaction.Sender = counterparty
		}
		transactions = append(transactions, transaction)
	}
	return transactions
}
