package doctor

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"medconnect/models"
	"medconnect/services/availability"
	"medconnect/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type memoryRepo struct {
	doctors map[string]models.Doctor
	reads   int
	// afterRead runs once GetByID has copied the document, before it returns.
	afterRead func()
}

func newMemoryRepo(doctors ...models.Doctor) *memoryRepo {
	r := &memoryRepo{doctors: map[string]models.Doctor{}}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, d *models.Doctor) error {
	r.doctors[d.ID] = *d
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	r.reads++
	d, ok := r.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return &d, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*models.Doctor, error) {
	for _, d := range r.doctors {
		if d.Profile.Email == email {
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (r *memoryRepo) GetByExternalUID(_ context.Context, uid string) (*models.Doctor, error) {
	for _, d := range r.doctors {
		if d.ExternalUID == uid {
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (r *memoryRepo) GetAll(_ context.Context, _ bson.M) ([]models.Doctor, error) {
	r.reads++
	out := make([]models.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Profile.FullName < out[j].Profile.FullName })
	return out, nil
}

func (r *memoryRepo) ReplaceAvailability(_ context.Context, id string, a models.Availability, at time.Time) error {
	d, ok := r.doctors[id]
	if !ok {
		return ErrDoctorNotFound
	}
	d.Availability = a
	d.UpdatedAt = at
	r.doctors[id] = d
	return nil
}

func (r *memoryRepo) UpdateTokenHash(_ context.Context, id, hash string) error {
	d, ok := r.doctors[id]
	if !ok {
		return ErrDoctorNotFound
	}
	d.Security.TokenHash = hash
	r.doctors[id] = d
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.doctors[id]; !ok {
		return ErrDoctorNotFound
	}
	delete(r.doctors, id)
	return nil
}

// memoryViews drops a fill that overlaps an Invalidate, like the Redis views.
type memoryViews struct {
	availability map[string]models.Availability
	roster       []models.DoctorListing
	rosterFresh  bool
	generation   int
	invalidated  []string
}

func newMemoryViews() *memoryViews {
	return &memoryViews{availability: map[string]models.Availability{}}
}

func (v *memoryViews) GetAvailability(_ context.Context, id string) (models.Availability, bool, error) {
	a, ok := v.availability[id]
	return a, ok, nil
}

func (v *memoryViews) FillAvailability(ctx context.Context, id string, load func(context.Context) (models.Availability, error)) (models.Availability, error) {
	gen := v.generation
	a, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if gen == v.generation {
		v.availability[id] = a
	}
	return a, nil
}

func (v *memoryViews) Invalidate(_ context.Context, id string) error {
	delete(v.availability, id)
	v.roster, v.rosterFresh = nil, false
	v.generation++
	v.invalidated = append(v.invalidated, id)
	return nil
}

func (v *memoryViews) Roster(context.Context) ([]models.DoctorListing, bool, error) {
	return v.roster, v.rosterFresh, nil
}

func (v *memoryViews) FillRoster(ctx context.Context, load func(context.Context) ([]models.DoctorListing, error)) ([]models.DoctorListing, error) {
	gen := v.generation
	roster, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if gen == v.generation {
		v.roster, v.rosterFresh = roster, true
	}
	return roster, nil
}

type memoryDrafts map[string]models.AvailabilityDraft

func (m memoryDrafts) Save(_ context.Context, d *models.AvailabilityDraft) error {
	cp := *d
	cp.Slots = append([]models.TimeSlot(nil), d.Slots...)
	m[d.ID] = cp
	return nil
}

func (m memoryDrafts) Get(_ context.Context, id string) (*models.AvailabilityDraft, error) {
	d, ok := m[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	d.Slots = append([]models.TimeSlot(nil), d.Slots...)
	return &d, nil
}

func (m memoryDrafts) Replace(ctx context.Context, d *models.AvailabilityDraft, expected int) error {
	stored, ok := m[d.ID]
	if !ok {
		return ErrDraftNotFound
	}
	if stored.Version != expected {
		return ErrDraftConflict
	}
	return m.Save(ctx, d)
}

func (m memoryDrafts) Delete(_ context.Context, id string) error {
	delete(m, id)
	return nil
}

// interleavedDrafts runs interleave once, just before the next Replace.
type interleavedDrafts struct {
	memoryDrafts
	interleave func()
}

func (d *interleavedDrafts) Replace(ctx context.Context, draft *models.AvailabilityDraft, expected int) error {
	if fn := d.interleave; fn != nil {
		d.interleave = nil
		fn()
	}
	return d.memoryDrafts.Replace(ctx, draft, expected)
}

type fakeIdentities map[string]string

func (f fakeIdentities) ExternalUID(_ context.Context, idToken string) (string, error) {
	uid, ok := f[idToken]
	if !ok {
		return "", errors.New("token rejected")
	}
	return uid, nil
}

type recordingQueue struct{ enqueued []string }

func (q *recordingQueue) EnqueueRefresh(_ context.Context, id string) error {
	q.enqueued = append(q.enqueued, id)
	return nil
}

type recordingRevoker struct{ forgotten []string }

func (r *recordingRevoker) Forget(_ context.Context, h string) error {
	r.forgotten = append(r.forgotten, h)
	return nil
}

// Monday 15 January 2024, 10:00.
var monday10 = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

func slot(day models.Weekday, start, end string) models.TimeSlot {
	return models.TimeSlot{Day: day, StartTime: start, EndTime: end, IsAvailable: true}
}

type fixture struct {
	svc    *DefaultDoctorService
	repo   *memoryRepo
	views  *memoryViews
	drafts memoryDrafts
	queue  *recordingQueue
}

func newFixture(t *testing.T, doctors ...models.Doctor) fixture {
	t.Helper()
	f := fixture{
		repo:   newMemoryRepo(doctors...),
		views:  newMemoryViews(),
		drafts: memoryDrafts{},
		queue:  &recordingQueue{},
	}
	svc, err := NewDefaultDoctorService(f.repo, f.views, f.drafts, f.queue, time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.Now = func() time.Time { return monday10 }
	f.svc = svc
	return f
}

func doctorWith(id, name string, slots ...models.TimeSlot) models.Doctor {
	return models.Doctor{
		ID:           id,
		Profile:      models.DoctorProfile{FullName: name, Email: id + "@example.com", Status: models.DoctorStatusActive},
		Availability: models.Availability(slots),
	}
}

func TestNewDefaultDoctorService_RequiresRepo(t *testing.T) {
	if _, err := NewDefaultDoctorService(nil, nil, nil, nil, 0); err == nil {
		t.Fatal("expected an error for a nil repository")
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	revoker := &recordingRevoker{}
	f.svc.Tokens = revoker
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, models.DoctorRegistrationRequest{
		FullName: "Dr. Ada Obi",
		Email:    " Ada@Example.com ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stored := f.repo.doctors[reg.ID]
	if stored.Profile.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", stored.Profile.Email)
	}
	if stored.Security.TokenHash != utils.HashToken(reg.Token) {
		t.Error("registration token hash not stored")
	}
	if stored.Availability == nil || len(stored.Availability) != 0 {
		t.Errorf("expected empty availability, got %#v", stored.Availability)
	}

	_, err = f.svc.Register(ctx, models.DoctorRegistrationRequest{FullName: "Other", Email: "ada@example.com", Password: "whatever1"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := f.svc.Authenticate(ctx, models.DoctorLoginRequest{Email: "ada@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, models.DoctorLoginRequest{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	login, err := f.svc.Authenticate(ctx, models.DoctorLoginRequest{Email: "ADA@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if login.Token == reg.Token {
		t.Error("expected a rotated token")
	}
	if f.repo.doctors[reg.ID].Security.TokenHash != utils.HashToken(login.Token) {
		t.Error("login token hash not stored")
	}
	if len(revoker.forgotten) != 1 || revoker.forgotten[0] != utils.HashToken(reg.Token) {
		t.Errorf("expected the old token hash to be forgotten, got %v", revoker.forgotten)
	}
}

func TestRegister_LinksVerifiedIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := func(email, token string) models.DoctorRegistrationRequest {
		return models.DoctorRegistrationRequest{FullName: "Dr. B", Email: email, Password: "correct-horse", IDToken: token}
	}

	if _, err := f.svc.Register(ctx, req("b@example.com", "token-b")); !errors.Is(err, ErrIdentityDisabled) {
		t.Fatalf("expected ErrIdentityDisabled, got %v", err)
	}

	f.svc.Identities = fakeIdentities{"token-b": "fb-b"}
	if _, err := f.svc.Register(ctx, req("b@example.com", "forged")); !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
	if len(f.repo.doctors) != 0 {
		t.Fatal("nothing should be stored for a rejected identity")
	}

	reg, err := f.svc.Register(ctx, req("b@example.com", "token-b"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := f.repo.doctors[reg.ID].ExternalUID; got != "fb-b" {
		t.Errorf("expected the verified UID, got %q", got)
	}

	if _, err := f.svc.Register(ctx, req("c@example.com", "token-b")); !errors.Is(err, ErrIdentityTaken) {
		t.Errorf("expected ErrIdentityTaken, got %v", err)
	}

	plain, err := f.svc.Register(ctx, req("d@example.com", ""))
	if err != nil || f.repo.doctors[plain.ID].ExternalUID != "" {
		t.Errorf("registration without a token should link nothing (%v)", err)
	}
}

func TestUpdateAvailability_OwnerOnly(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A"))
	_, err := f.svc.UpdateAvailability(context.Background(), "doc-2", "doc-1", []models.TimeSlot{slot(models.Monday, "09:00", "17:00")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(f.repo.doctors["doc-1"].Availability) != 0 {
		t.Error("availability must not change")
	}
}

func TestUpdateAvailability_RejectsWithoutWriting(t *testing.T) {
	existing := slot(models.Tuesday, "08:00", "12:00")
	f := newFixture(t, doctorWith("doc-1", "A", existing))

	_, err := f.svc.UpdateAvailability(context.Background(), "doc-1", "doc-1", []models.TimeSlot{
		slot(models.Monday, "09:00", "12:00"),
		slot(models.Monday, "13:00", "17:00"),
	})
	if !errors.Is(err, availability.ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}
	got := f.repo.doctors["doc-1"].Availability
	if len(got) != 1 || got[0] != existing {
		t.Errorf("stored availability changed: %#v", got)
	}
	if len(f.queue.enqueued) != 0 {
		t.Error("no refresh expected on rejection")
	}
}

func TestUpdateAvailability_ReplacesAndRefreshes(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A", slot(models.Tuesday, "08:00", "12:00")))
	f.views.availability["doc-1"] = models.Availability{slot(models.Tuesday, "08:00", "12:00")}

	summary, err := f.svc.UpdateAvailability(context.Background(), "doc-1", "doc-1", []models.TimeSlot{
		slot(models.Monday, "09:00", "17:00"),
		{Day: models.Friday, StartTime: "09:00"},
		{Day: models.Saturday, StartTime: "10:00", EndTime: "12:00", IsAvailable: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.IsAvailableNow || summary.Status != availability.StatusAvailable {
		t.Errorf("unexpected summary %+v", summary)
	}

	stored := f.repo.doctors["doc-1"]
	if len(stored.Availability) != 1 || stored.Availability[0].Day != models.Monday {
		t.Errorf("expected only the Monday slot, got %#v", stored.Availability)
	}
	if !stored.UpdatedAt.Equal(monday10) {
		t.Errorf("updatedAt not set: %v", stored.UpdatedAt)
	}
	if _, cached := f.views.availability["doc-1"]; cached {
		t.Error("cache entry should be invalidated")
	}
	if len(f.queue.enqueued) != 1 || f.queue.enqueued[0] != "doc-1" {
		t.Errorf("expected one refresh, got %v", f.queue.enqueued)
	}
}

func TestGetAvailability_UsesCache(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A", slot(models.Monday, "09:00", "17:00")))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		summary, err := f.svc.GetAvailability(ctx, "doc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TodayHours != "9:00 AM - 5:00 PM" || summary.NextAvailable != availability.NextToday {
			t.Errorf("unexpected summary %+v", summary)
		}
	}
	if f.repo.reads != 1 {
		t.Errorf("expected one repository read, got %d", f.repo.reads)
	}

	if _, err := f.svc.GetAvailability(ctx, "missing"); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestGetAvailability_FillRacingAWriteIsNotCached(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A", slot(models.Monday, "09:00", "17:00")))
	ctx := context.Background()

	f.repo.afterRead = func() {
		if _, err := f.svc.UpdateAvailability(ctx, "doc-1", "doc-1", []models.TimeSlot{slot(models.Tuesday, "09:00", "17:00")}); err != nil {
			t.Fatalf("concurrent update: %v", err)
		}
	}
	if _, err := f.svc.GetAvailability(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached, ok := f.views.availability["doc-1"]; ok {
		t.Fatalf("schedule read before the write was cached: %#v", cached)
	}

	summary, err := f.svc.GetAvailability(ctx, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.IsAvailableNow || summary.NextAvailable != availability.NextTomorrow {
		t.Errorf("expected the Tuesday-only schedule, got %+v", summary)
	}
}

func TestListDoctors(t *testing.T) {
	f := newFixture(t,
		doctorWith("doc-1", "Alpha", slot(models.Monday, "09:00", "17:00")),
		doctorWith("doc-2", "Bravo", slot(models.Tuesday, "09:00", "17:00")),
		doctorWith("doc-3", "Charlie"),
	)
	ctx := context.Background()

	all, err := f.svc.ListDoctors(ctx, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.DoctorCard{
		{ID: "doc-1", FullName: "Alpha", Status: availability.StatusAvailable, NextAvailable: availability.NextToday, TodayHours: "9:00 AM - 5:00 PM"},
		{ID: "doc-2", FullName: "Bravo", Status: availability.StatusUnavailable, NextAvailable: availability.NextTomorrow, TodayHours: availability.StatusOffDay},
		{ID: "doc-3", FullName: "Charlie", Status: availability.StatusUnavailable, NextAvailable: availability.NextNotAvailable, TodayHours: availability.ScheduleNotAvailable},
	}
	if len(all) != len(want) {
		t.Fatalf("expected %d cards, got %d", len(want), len(all))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("card %d: expected %+v, got %+v", i, want[i], all[i])
		}
	}

	now, err := f.svc.ListDoctors(ctx, true)
	if err != nil || len(now) != 1 || now[0].ID != "doc-1" {
		t.Fatalf("expected only doc-1, got %+v (%v)", now, err)
	}
	if !f.views.rosterFresh || len(f.views.roster) != 2 {
		t.Fatalf("expected a stored roster of schedulable doctors, got %+v", f.views.roster)
	}

	reads := f.repo.reads
	if _, err := f.svc.ListDoctors(ctx, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.repo.reads != reads {
		t.Error("fresh roster should be served without a repository read")
	}
}

func TestListDoctors_AvailableNowUsesCurrentInstant(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "Alpha", slot(models.Monday, "09:00", "17:00")))
	ctx := context.Background()

	f.svc.Now = func() time.Time { return time.Date(2024, time.January, 15, 16, 59, 30, 0, time.UTC) }
	before, err := f.svc.ListDoctors(ctx, true)
	if err != nil || len(before) != 1 || before[0].Status != availability.StatusAvailable {
		t.Fatalf("expected doc-1 available at 16:59, got %+v (%v)", before, err)
	}
	reads := f.repo.reads

	f.svc.Now = func() time.Time { return time.Date(2024, time.January, 15, 17, 1, 0, 0, time.UTC) }
	after, err := f.svc.ListDoctors(ctx, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after) != 0 {
		t.Errorf("window closed at 17:00, still listed: %+v", after)
	}
	if f.repo.reads != reads {
		t.Error("expected the cached roster to be reused")
	}

	summary, err := f.svc.GetAvailability(ctx, "doc-1")
	if err != nil || summary.IsAvailableNow {
		t.Errorf("expected unavailable at 17:01, got %+v (%v)", summary, err)
	}
	all, _ := f.svc.ListDoctors(ctx, false)
	if len(all) != 1 || all[0].Status != availability.StatusUnavailable || all[0].NextAvailable != "Monday" {
		t.Errorf("unexpected card at 17:01: %+v", all)
	}
}

func TestRefreshDoctor(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A", slot(models.Monday, "09:00", "17:00")))
	ctx := context.Background()

	if err := f.svc.RefreshDoctor(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.views.availability["doc-1"]) != 1 {
		t.Error("expected the schedule to be cached")
	}

	if err := f.svc.DeleteDoctor(ctx, "doc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.RefreshDoctor(ctx, "doc-1"); err != nil {
		t.Errorf("refreshing a deleted doctor should succeed, got %v", err)
	}
	if _, ok := f.views.availability["doc-1"]; ok {
		t.Error("deleted doctor must not stay cached")
	}
}

func TestDraftLifecycle(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A"))
	ctx := context.Background()

	draft, err := f.svc.StartDraft(ctx, "doc-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(draft.Slots) != 1 || draft.State != string(availability.StateIdle) {
		t.Fatalf("expected one blank row in idle state, got %+v", draft)
	}

	edits := []struct {
		field string
		value interface{}
	}{
		{"day", "monday"},
		{"startTime", "09:00"},
		{"endTime", "17:00"},
	}
	for _, e := range edits {
		if _, err := f.svc.UpdateDraftSlot(ctx, "doc-1", draft.ID, 0, e.field, e.value); err != nil {
			t.Fatalf("update %s: %v", e.field, err)
		}
	}
	if _, err := f.svc.UpdateDraftSlot(ctx, "doc-1", draft.ID, 0, "isAvailable", "yes"); !errors.Is(err, availability.ErrFieldValue) {
		t.Errorf("expected ErrFieldValue, got %v", err)
	}

	if _, err := f.svc.AddDraftSlot(ctx, "doc-1", draft.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	for _, e := range edits {
		if _, err := f.svc.UpdateDraftSlot(ctx, "doc-1", draft.ID, 1, e.field, e.value); err != nil {
			t.Fatalf("update %s: %v", e.field, err)
		}
	}

	if _, err := f.svc.SaveDraft(ctx, "doc-1", draft.ID); !errors.Is(err, availability.ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}
	rejected, err := f.svc.GetDraft(ctx, "doc-1", draft.ID)
	if err != nil {
		t.Fatalf("draft should survive a rejected save: %v", err)
	}
	if rejected.State != string(availability.StateEditing) || rejected.LastError == "" || len(rejected.Slots) != 2 {
		t.Errorf("unexpected rejected draft %+v", rejected)
	}
	if len(f.repo.doctors["doc-1"].Availability) != 0 {
		t.Error("rejected save must not write")
	}

	if _, err := f.svc.UpdateDraftSlot(ctx, "doc-1", draft.ID, 1, "day", "friday"); err != nil {
		t.Fatalf("update: %v", err)
	}
	preview, err := f.svc.PreviewDraft(ctx, "doc-1", draft.ID)
	if err != nil || len(preview) != 7 || !preview[1].IsAvailable || !preview[5].IsAvailable {
		t.Fatalf("unexpected preview %+v (%v)", preview, err)
	}

	summary, err := f.svc.SaveDraft(ctx, "doc-1", draft.ID)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !summary.IsAvailableNow {
		t.Errorf("expected available at Monday 10:00, got %+v", summary)
	}
	if got := f.repo.doctors["doc-1"].Availability; len(got) != 2 {
		t.Errorf("expected two stored slots, got %#v", got)
	}
	if _, err := f.svc.GetDraft(ctx, "doc-1", draft.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("saved draft should be gone, got %v", err)
	}
}

func TestDraft_RemoveLastSlotAndOwnership(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A", slot(models.Monday, "09:00", "17:00")), doctorWith("doc-2", "B"))
	ctx := context.Background()

	draft, err := f.svc.StartDraft(ctx, "doc-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if draft.Slots[0].Day != models.Monday {
		t.Errorf("draft should be seeded from the stored schedule, got %+v", draft.Slots)
	}
	if _, err := f.svc.RemoveDraftSlot(ctx, "doc-1", draft.ID, 0); !errors.Is(err, availability.ErrLastSlot) {
		t.Errorf("expected ErrLastSlot, got %v", err)
	}
	if _, err := f.svc.GetDraft(ctx, "doc-2", draft.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DiscardDraft(ctx, "doc-1", draft.ID); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := f.svc.GetDraft(ctx, "doc-1", draft.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestDraft_InterleavedEditsAreBothKept(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A"))
	drafts := &interleavedDrafts{memoryDrafts: f.drafts}
	f.svc.Drafts = drafts
	ctx := context.Background()

	draft, err := f.svc.StartDraft(ctx, "doc-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	drafts.interleave = func() {
		if _, err := f.svc.UpdateDraftSlot(ctx, "doc-1", draft.ID, 0, "day", "monday"); err != nil {
			t.Fatalf("interleaved edit: %v", err)
		}
	}
	got, err := f.svc.UpdateDraftSlot(ctx, "doc-1", draft.ID, 0, "startTime", "09:00")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Slots[0].Day != models.Monday || got.Slots[0].StartTime != "09:00" || got.Version != 2 {
		t.Errorf("expected both edits at version 2, got %+v", got)
	}
	stored := f.drafts[draft.ID]
	if stored.Slots[0].Day != models.Monday || stored.Slots[0].StartTime != "09:00" {
		t.Errorf("stored draft lost an edit: %+v", stored.Slots[0])
	}
}

func TestDraft_EditGivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newFixture(t, doctorWith("doc-1", "A"))
	f.svc.Drafts = conflictingDrafts{f.drafts}
	ctx := context.Background()

	draft, err := f.svc.StartDraft(ctx, "doc-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.AddDraftSlot(ctx, "doc-1", draft.ID); !errors.Is(err, ErrDraftConflict) {
		t.Errorf("expected ErrDraftConflict, got %v", err)
	}
}

type conflictingDrafts struct{ memoryDrafts }

func (conflictingDrafts) Replace(context.Context, *models.AvailabilityDraft, int) error {
	return ErrDraftConflict
}

func TestDrafts_Disabled(t *testing.T) {
	svc, _ := NewDefaultDoctorService(newMemoryRepo(doctorWith("doc-1", "A")), nil, nil, nil, time.Hour)
	if _, err := svc.StartDraft(context.Background(), "doc-1"); !errors.Is(err, ErrDraftsDisabled) {
		t.Errorf("expected ErrDraftsDisabled, got %v", err)
	}
}
