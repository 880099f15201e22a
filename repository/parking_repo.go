package repository

import (
	"context"
	"log/slog"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"smartpark/models"
)

// ParkingRepository is the typed boundary over the document store. Records
// that fail shape validation are filtered here and never reach the core.
type ParkingRepository interface {
	Occupancy(ctx context.Context) (map[string]string, error)
	SpotLabel(ctx context.Context, spotKey string) (string, error)
	Details(ctx context.Context) (map[string]models.ReservationDetail, error)
	History(ctx context.Context, day string) (map[string]map[string]models.HistoryEntry, error)
	WriteDetail(ctx context.Context, detail models.ReservationDetail) error
	WriteOccupancy(ctx context.Context, spotKey, label string) error
	DeleteDetail(ctx context.Context, spotKey string) error
	AppendHistory(ctx context.Context, day, reservationRef string, entry models.HistoryEntry) error
	UpsertClient(ctx context.Context, client models.Client) error
}

const (
	collectionLot     = "parking_lot"
	collectionDetails = "parking_lot_details"
	collectionHistory = "parking_lot_history"
	collectionClients = "clients"
)

// PBParkingRepository reads and writes the PocketBase collections. The store
// gives no atomicity across collections; committing a reservation is two
// independent writes.
type PBParkingRepository struct {
	app core.App
}

func NewParkingRepository(app core.App) *PBParkingRepository {
	return &PBParkingRepository{app: app}
}

func (r *PBParkingRepository) Occupancy(_ context.Context) (map[string]string, error) {
	records, err := r.app.FindAllRecords(collectionLot)
	if err != nil {
		return nil, err
	}

	occupancy := make(map[string]string, len(records))
	for _, record := range records {
		key := record.GetString("spot_key")
		label := record.GetString("label")
		if key == "" || label == "" {
			slog.Warn("Skipping malformed occupancy record", "record_id", record.Id)
			continue
		}
		occupancy[key] = label
	}

	return occupancy, nil
}

func (r *PBParkingRepository) SpotLabel(_ context.Context, spotKey string) (string, error) {
	record, err := r.app.FindFirstRecordByData(collectionLot, "spot_key", spotKey)
	if err != nil {
		return "", err
	}
	return record.GetString("label"), nil
}

func (r *PBParkingRepository) Details(_ context.Context) (map[string]models.ReservationDetail, error) {
	records, err := r.app.FindAllRecords(collectionDetails)
	if err != nil {
		return nil, err
	}

	details := make(map[string]models.ReservationDetail, len(records))
	for _, record := range records {
		detail, ok := detailFromRecord(record)
		if !ok {
			slog.Warn("Skipping malformed reservation detail", "record_id", record.Id)
			continue
		}
		details[detail.SpotKey] = detail
	}

	return details, nil
}

func (r *PBParkingRepository) History(_ context.Context, day string) (map[string]map[string]models.HistoryEntry, error) {
	records, err := r.app.FindAllRecords(collectionHistory, dbx.HashExp{"day": day})
	if err != nil {
		return nil, err
	}

	history := make(map[string]map[string]models.HistoryEntry)
	for _, record := range records {
		spotKey := record.GetString("spot_key")
		if spotKey == "" {
			continue
		}
		ref := record.GetString("reservation_ref")
		if ref == "" {
			ref = record.Id
		}
		if history[spotKey] == nil {
			history[spotKey] = make(map[string]models.HistoryEntry)
		}
		history[spotKey][ref] = models.HistoryEntry{
			SpotKey:     spotKey,
			ClientName:  record.GetString("client_name"),
			ClientEmail: record.GetString("client_email"),
			StartTime:   record.GetDateTime("start_time").Time(),
			EndTime:     record.GetDateTime("end_time").Time(),
			TotalPrice:  record.GetFloat("total_price"),
		}
	}

	return history, nil
}

func (r *PBParkingRepository) WriteDetail(_ context.Context, detail models.ReservationDetail) error {
	record, err := r.app.FindFirstRecordByData(collectionDetails, "spot_key", detail.SpotKey)
	if err != nil {
		collection, cerr := r.app.FindCollectionByNameOrId(collectionDetails)
		if cerr != nil {
			return cerr
		}
		record = core.NewRecord(collection)
		record.Set("spot_key", detail.SpotKey)
	}

	record.Set("client_name", detail.ClientName)
	record.Set("client_email", detail.ClientEmail)
	record.Set("start_time", detail.StartTime)
	record.Set("end_time", detail.EndTime)
	record.Set("total_price", detail.TotalPrice)
	record.Set("access_code", detail.AccessCode)

	return r.app.Save(record)
}

func (r *PBParkingRepository) WriteOccupancy(_ context.Context, spotKey, label string) error {
	record, err := r.app.FindFirstRecordByData(collectionLot, "spot_key", spotKey)
	if err != nil {
		collection, cerr := r.app.FindCollectionByNameOrId(collectionLot)
		if cerr != nil {
			return cerr
		}
		record = core.NewRecord(collection)
		record.Set("spot_key", spotKey)
	}

	record.Set("label", label)

	return r.app.Save(record)
}

func (r *PBParkingRepository) DeleteDetail(_ context.Context, spotKey string) error {
	record, err := r.app.FindFirstRecordByData(collectionDetails, "spot_key", spotKey)
	if err != nil {
		return err
	}
	return r.app.Delete(record)
}

func (r *PBParkingRepository) AppendHistory(_ context.Context, day, reservationRef string, entry models.HistoryEntry) error {
	collection, err := r.app.FindCollectionByNameOrId(collectionHistory)
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("day", day)
	record.Set("spot_key", entry.SpotKey)
	record.Set("reservation_ref", reservationRef)
	record.Set("client_name", entry.ClientName)
	record.Set("client_email", entry.ClientEmail)
	record.Set("start_time", entry.StartTime)
	record.Set("end_time", entry.EndTime)
	record.Set("total_price", entry.TotalPrice)

	return r.app.Save(record)
}

func (r *PBParkingRepository) UpsertClient(_ context.Context, client models.Client) error {
	record, err := r.app.FindFirstRecordByData(collectionClients, "email", client.Email)
	if err != nil {
		collection, cerr := r.app.FindCollectionByNameOrId(collectionClients)
		if cerr != nil {
			return cerr
		}
		record = core.NewRecord(collection)
		record.Set("email", client.Email)
	}

	record.Set("full_name", client.FullName)

	return r.app.Save(record)
}

// detailFromRecord validates the shape of a stored detail. A detail without a
// spot key, client email, or end instant cannot participate in any check and
// is treated as absent.
func detailFromRecord(record *core.Record) (models.ReservationDetail, bool) {
	detail := models.ReservationDetail{
		SpotKey:     record.GetString("spot_key"),
		ClientName:  record.GetString("client_name"),
		ClientEmail: record.GetString("client_email"),
		StartTime:   record.GetDateTime("start_time").Time(),
		EndTime:     record.GetDateTime("end_time").Time(),
		TotalPrice:  record.GetFloat("total_price"),
		AccessCode:  record.GetString("access_code"),
	}

	if detail.SpotKey == "" || detail.ClientEmail == "" || detail.EndTime.IsZero() {
		return models.ReservationDetail{}, false
	}

	return detail, true
}
