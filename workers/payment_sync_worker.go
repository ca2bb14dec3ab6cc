// workers/payment_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"challenge-reward-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentSyncClient polls the payment service for stake charge changes.
// Money never moves through this service — we only mirror charge state so
// dashboards can show whether a challenge's stake went through.
type PaymentSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewPaymentSyncClient(db *gorm.DB) *PaymentSyncClient {
	baseURL := os.Getenv("PAYMENT_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("PAYMENT_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("CHALLENGE_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("CHALLENGE_SERVICE_TOKEN environment variable is required for payment sync")
	}

	return &PaymentSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *PaymentSyncClient) GetChangedPayments(ctx context.Context, since time.Time) ([]models.StakePaymentMirror, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/stake-payments", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call payment service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("payment service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Payments []models.StakePaymentMirror `json:"payments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode payment service response: %w", err)
	}

	return response.Payments, nil
}

// PollStakePayments keeps the local stake_payment_mirror table current.
// The sync cursor only advances on success, so a failed window is retried
// on the next tick.
func PollStakePayments(ctx context.Context, client *PaymentSyncClient, pollInterval time.Duration) {
	log.Println("Starting stake payment polling (DB-backed)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stake payment polling stopped.")
			return
		case <-ticker.C:
			tickTime := time.Now().UTC()

			payments, err := client.GetChangedPayments(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling stake payments: %v", err)
				continue
			}

			count := len(payments)
			if count == 0 {
				continue
			}

			// Batch upsert with OnConflict: one statement, atomic on Postgres
			if err := client.DB.Clauses(
				clause.OnConflict{
					Columns: []clause.Column{{Name: "payment_ref"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"user_id",
						"challenge_id",
						"amount",
						"currency",
						"status",
						"charged_at",
						"created_at",
						"updated_at",
					}),
				},
			).Create(&payments).Error; err != nil {
				log.Printf("❌ Failed to upsert %d payment(s) into stake_payment_mirror: %v", count, err)
				// Do NOT advance lastSyncTime on failure — retry same window next tick
				continue
			}

			lastSyncTime = tickTime
			log.Printf("✅ Upserted %d payment(s) into stake_payment_mirror.", count)
		}
	}
}

// GetPaymentsForChallenge returns mirrored stake charges for one challenge.
func GetPaymentsForChallenge(db *gorm.DB, challengeID string) ([]models.StakePaymentMirror, error) {
	var payments []models.StakePaymentMirror
	if err := db.Where("challenge_id = ?", challengeID).Order("created_at ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
