package registry

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const DefaultCodeTTL = 24 * time.Hour

const DefaultPartitionPrefix = "Registros_"

type Config struct {
	CodeLength      int
	CodeTTL         time.Duration
	PartitionPrefix string
	TimeZone        string
}

// Service owns the visit-code lifecycle: it is the only component that
// decides state transitions (ACTIVE → VALIDATED, ACTIVE → EXPIRED). The
// store is dumb persistence; rows are never deleted.
type Service struct {
	store  PartitionStore
	photos PhotoStore
	gen    Generator
	ttl    time.Duration
	prefix string
	loc    *time.Location
	now    func() time.Time
}

func NewService(store PartitionStore, photos PhotoStore, cfg Config) *Service {
	ttl := cfg.CodeTTL
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	prefix := cfg.PartitionPrefix
	if prefix == "" {
		prefix = DefaultPartitionPrefix
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil || cfg.TimeZone == "" {
		loc = time.UTC
	}

	return &Service{
		store:  store,
		photos: photos,
		gen:    NewGenerator(cfg.CodeLength),
		ttl:    ttl,
		prefix: prefix,
		loc:    loc,
		now:    time.Now,
	}
}

// Register creates a new ACTIVE visit code for a house, creating the
// condominium partition on first use. Nothing is written when validation of
// the input fails.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisteredCode, error) {
	houseID, err := NormalizeHouseID(input.HouseID)
	if err != nil {
		return nil, err
	}

	visitor := strings.TrimSpace(input.VisitorName)
	if visitor == "" {
		return nil, fmt.Errorf("%w: visitor_name", ErrMissingField)
	}

	partition, err := PartitionName(s.prefix, input.Condominio)
	if err != nil {
		return nil, err
	}

	code, err := s.gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	createdAt := s.now().UTC()
	record := Record{
		CreatedAt:    createdAt,
		Kind:         KindCode,
		Code:         code,
		VisitorName:  visitor,
		ResidentName: strings.TrimSpace(input.ResidentName),
		HouseID:      houseID,
		Status:       StatusActive,
	}
	record.stampLocal(createdAt, s.loc)

	if err := s.store.Ensure(ctx, partition, Header); err != nil {
		return nil, fmt.Errorf("ensure partition %s: %w", partition, err)
	}
	if err := s.store.Append(ctx, partition, record.ToRow()); err != nil {
		return nil, fmt.Errorf("append to %s: %w", partition, err)
	}

	return &RegisteredCode{
		Record:    record,
		ExpiresAt: createdAt.Add(s.ttl),
	}, nil
}

// Validate resolves a presented code against every condominium partition.
// Despite its name it mutates state: the matched row is transitioned to
// VALIDATED, or to EXPIRED when its TTL has elapsed, before the result is
// returned. A code past either terminal state answers DENIED/NOT_FOUND —
// never-existed and already-consumed are deliberately indistinguishable.
//
// When two ACTIVE rows share a code (generator collision) the first match in
// scan order — partition enumeration order, then row order — wins. Two
// concurrent calls can both observe ACTIVE before either writes; the store
// offers no compare-and-swap, so that double-validation race is accepted.
func (s *Service) Validate(ctx context.Context, code string) (ValidationResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ValidationResult{}, fmt.Errorf("%w: code", ErrMissingField)
	}

	partitions, err := s.store.Partitions(ctx)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("list partitions: %w", err)
	}

	for _, name := range partitions {
		if !strings.HasPrefix(name, s.prefix) {
			continue
		}

		rows, err := s.store.Scan(ctx, name)
		if err != nil {
			return ValidationResult{}, fmt.Errorf("scan %s: %w", name, err)
		}

		for i := 1; i < len(rows); i++ {
			record, ok := RecordFromRow(rows[i])
			if !ok {
				continue
			}
			if record.Code == "" || !strings.EqualFold(record.Code, code) || record.Status != StatusActive {
				continue
			}

			if s.now().UTC().Sub(record.CreatedAt) > s.ttl {
				if err := s.store.UpdateCell(ctx, name, i, ColumnStatus, string(StatusExpired)); err != nil {
					return ValidationResult{}, fmt.Errorf("expire row %d in %s: %w", i, name, err)
				}
				return ValidationResult{Status: ValidationDenied, Reason: ReasonExpired}, nil
			}

			if err := s.store.UpdateCell(ctx, name, i, ColumnStatus, string(StatusValidated)); err != nil {
				return ValidationResult{}, fmt.Errorf("validate row %d in %s: %w", i, name, err)
			}
			return ValidationResult{
				Status:      ValidationValidated,
				VisitorName: record.VisitorName,
				HouseID:     record.HouseID,
			}, nil
		}
	}

	return ValidationResult{Status: ValidationDenied, Reason: ReasonNotFound}, nil
}

// RegisterWorker logs a worker visit. When photo bytes are supplied the
// photo is uploaded first and a failed upload aborts the whole operation —
// no row is written without its photo reference.
func (s *Service) RegisterWorker(ctx context.Context, input RegisterWorkerInput) (*Record, error) {
	houseID, err := NormalizeHouseID(input.HouseID)
	if err != nil {
		return nil, err
	}

	worker := strings.TrimSpace(input.WorkerName)
	if worker == "" {
		return nil, fmt.Errorf("%w: worker_name", ErrMissingField)
	}

	partition, err := PartitionName(s.prefix, input.Condominio)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	serviceType := strings.TrimSpace(input.ServiceType)

	photoURL := strings.TrimSpace(input.PhotoURL)
	if len(input.Photo) > 0 {
		if s.photos == nil {
			return nil, ErrPhotoStoreDisabled
		}
		filename := workerPhotoFilename(houseID, serviceType, createdAt)
		photoURL, err = s.photos.Upload(ctx, input.Photo, filename)
		if err != nil {
			return nil, fmt.Errorf("upload photo: %w", err)
		}
	}

	record := Record{
		CreatedAt:   createdAt,
		Kind:        KindWorker,
		VisitorName: worker,
		HouseID:     houseID,
		Status:      StatusRegistered,
		ServiceType: serviceType,
		PhotoURL:    photoURL,
	}
	record.stampLocal(createdAt, s.loc)

	if err := s.store.Ensure(ctx, partition, Header); err != nil {
		return nil, fmt.Errorf("ensure partition %s: %w", partition, err)
	}
	if err := s.store.Append(ctx, partition, record.ToRow()); err != nil {
		return nil, fmt.Errorf("append to %s: %w", partition, err)
	}

	return &record, nil
}

// TTL reports the configured validation window.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// PartitionPrefix reports the naming prefix shared with the projections.
func (s *Service) PartitionPrefix() string {
	return s.prefix
}

func workerPhotoFilename(houseID, serviceType string, t time.Time) string {
	sanitized := strings.ReplaceAll(strings.TrimSpace(serviceType), " ", "_")
	if sanitized == "" {
		sanitized = "sin_tipo"
	}
	return fmt.Sprintf("INE_Casa_%s_%s_%s_%d.jpg", houseID, sanitized, t.Format("2006-01-02"), t.UnixMilli())
}
