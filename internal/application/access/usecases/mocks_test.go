package usecases

import (
	"context"
	"fmt"
	"time"

	"deviceauth/internal/domain/authorization"
	"deviceauth/internal/domain/device"
	"deviceauth/internal/domain/operator"
	"deviceauth/internal/shared/errors"
	"deviceauth/internal/shared/logger"
)

// In-memory fakes. The refresh state machine is stateful, so fakes that
// actually store records exercise it better than call-expectation mocks.

type fakeOperatorDir struct {
	operators map[uint]*operator.Operator
}

func newFakeOperatorDir(ops ...*operator.Operator) *fakeOperatorDir {
	d := &fakeOperatorDir{operators: make(map[uint]*operator.Operator)}
	for _, op := range ops {
		d.operators[op.ID] = op
	}
	return d
}

func (d *fakeOperatorDir) GetByLogin(ctx context.Context, login string) (*operator.Operator, error) {
	for _, op := range d.operators {
		if op.Login == login {
			cp := *op
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("operator not found")
}

func (d *fakeOperatorDir) GetByID(ctx context.Context, id uint) (*operator.Operator, error) {
	if op, ok := d.operators[id]; ok {
		cp := *op
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("operator not found")
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

type fakeDeviceRepo struct {
	nextID  uint
	devices map[uint]*device.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{nextID: 1, devices: make(map[uint]*device.Device)}
}

func (r *fakeDeviceRepo) Create(ctx context.Context, d *device.Device) error {
	d.ID = r.nextID
	r.nextID++
	cp := *d
	r.devices[d.ID] = &cp
	return nil
}

func (r *fakeDeviceRepo) GetByID(ctx context.Context, id uint) (*device.Device, error) {
	if d, ok := r.devices[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("device not found")
}

func (r *fakeDeviceRepo) GetByUUID(ctx context.Context, uuid, platform string) (*device.Device, error) {
	for _, d := range r.devices {
		if d.UUID == uuid && d.Platform == platform {
			cp := *d
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("device not found")
}

func (r *fakeDeviceRepo) Update(ctx context.Context, d *device.Device) error {
	if _, ok := r.devices[d.ID]; !ok {
		return errors.NewNotFoundError("device not found")
	}
	cp := *d
	r.devices[d.ID] = &cp
	return nil
}

func (r *fakeDeviceRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.devices[id]; !ok {
		return errors.NewNotFoundError("device not found")
	}
	delete(r.devices, id)
	return nil
}

type fakeAuthRepo struct {
	nextID  uint
	records map[uint]*authorization.Authorization
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{nextID: 1, records: make(map[uint]*authorization.Authorization)}
}

func (r *fakeAuthRepo) Create(ctx context.Context, a *authorization.Authorization) error {
	for _, rec := range r.records {
		if rec.AccessToken == a.AccessToken || rec.DeviceID == a.DeviceID {
			return errors.NewConflictError("duplicate authorization")
		}
	}
	a.ID = r.nextID
	r.nextID++
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *fakeAuthRepo) GetByAccessToken(ctx context.Context, token string) (*authorization.Authorization, error) {
	for _, rec := range r.records {
		if rec.AccessToken == token {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("authorization not found")
}

func (r *fakeAuthRepo) GetByPreviousAccessToken(ctx context.Context, token string) (*authorization.Authorization, error) {
	for _, rec := range r.records {
		if rec.PreviousAccessToken == token && token != "" {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("authorization not found")
}

func (r *fakeAuthRepo) ListByDevice(ctx context.Context, deviceID uint) ([]*authorization.Authorization, error) {
	var out []*authorization.Authorization
	for _, rec := range r.records {
		if rec.DeviceID == deviceID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAuthRepo) Update(ctx context.Context, a *authorization.Authorization) error {
	if _, ok := r.records[a.ID]; !ok {
		return errors.NewNotFoundError("authorization not found")
	}
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *fakeAuthRepo) UpdateIfAccessToken(ctx context.Context, a *authorization.Authorization, currentToken string) error {
	stored, ok := r.records[a.ID]
	if !ok || stored.AccessToken != currentToken {
		return errors.NewConflictError("authorization was modified concurrently")
	}
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *fakeAuthRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.records[id]; !ok {
		return errors.NewNotFoundError("authorization not found")
	}
	delete(r.records, id)
	return nil
}

func (r *fakeAuthRepo) DeleteByDevice(ctx context.Context, deviceID uint) error {
	for id, rec := range r.records {
		if rec.DeviceID == deviceID {
			delete(r.records, id)
		}
	}
	return nil
}

// fakeTokenIssuer hands out sequence-numbered tokens so tests can assert
// exactly which generation they are holding.
type fakeTokenIssuer struct {
	counter         int
	accessDuration  time.Duration
	refreshDuration time.Duration
}

func newFakeTokenIssuer() *fakeTokenIssuer {
	return &fakeTokenIssuer{
		accessDuration:  time.Hour,
		refreshDuration: 30 * 24 * time.Hour,
	}
}

func (f *fakeTokenIssuer) AccessToken(seed string, now time.Time) IssuedToken {
	f.counter++
	return IssuedToken{
		Value:     fmt.Sprintf("access-%d", f.counter),
		CreatedAt: now.Truncate(time.Second),
		ExpiresAt: now.Truncate(time.Second).Add(f.accessDuration),
	}
}

func (f *fakeTokenIssuer) RefreshToken(seed string, now time.Time) IssuedToken {
	return IssuedToken{
		Value:     fmt.Sprintf("refresh-%d", f.counter),
		CreatedAt: now.Truncate(time.Second),
		ExpiresAt: now.Truncate(time.Second).Add(f.refreshDuration),
	}
}

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                   {}
func (noopLogger) Info(msg string, args ...any)                    {}
func (noopLogger) Warn(msg string, args ...any)                    {}
func (noopLogger) Error(msg string, args ...any)                   {}
func (l noopLogger) With(args ...any) logger.Interface             { return l }
func (l noopLogger) Named(name string) logger.Interface            { return l }
func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
