package contact_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/contact"
)

// memRepo is an in-memory contact repository for unit testing.
type memRepo struct {
	mu       sync.Mutex
	contacts []*domain.Contact
}

func newMemRepo() *memRepo {
	return &memRepo{}
}

func (m *memRepo) Create(_ context.Context, c *domain.Contact) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.contacts {
		if existing.Email == c.Email {
			return "", contact.ErrDuplicateEmail
		}
	}
	cp := *c
	m.contacts = append(m.contacts, &cp)
	return cp.ID, nil
}

func (m *memRepo) Get(_ context.Context, id string) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contacts {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, contact.ErrNotFound
}

func (m *memRepo) List(_ context.Context) ([]domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Contact, 0, len(m.contacts))
	for i := len(m.contacts) - 1; i >= 0; i-- {
		out = append(out, *m.contacts[i])
	}
	return out, nil
}

func (m *memRepo) ListSubscribed(_ context.Context) ([]domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Contact
	for _, c := range m.contacts {
		if c.Subscribed {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memRepo) GetSubscribedByIDs(_ context.Context, ids []string) ([]domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byID := make(map[string]*domain.Contact, len(m.contacts))
	for _, c := range m.contacts {
		byID[c.ID] = c
	}
	var out []domain.Contact
	for _, id := range ids {
		if c, ok := byID[id]; ok && c.Subscribed {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memRepo) SetSubscribed(_ context.Context, id string, subscribed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contacts {
		if c.ID == id {
			c.Subscribed = subscribed
			return nil
		}
	}
	return contact.ErrNotFound
}

func TestCreate(t *testing.T) {
	svc := contact.NewService(newMemRepo())
	c, err := svc.Create(context.Background(), contact.CreateInput{
		Email: " Alice@Example.COM ", Name: "Alice", Company: "Acme",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", c.Email)
	}
	if !c.Subscribed {
		t.Fatal("new contacts should be subscribed")
	}
}

func TestCreateInvalidEmail(t *testing.T) {
	svc := contact.NewService(newMemRepo())
	if _, err := svc.Create(context.Background(), contact.CreateInput{Email: "not-an-email"}); err != contact.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestCreateDuplicate(t *testing.T) {
	svc := contact.NewService(newMemRepo())
	if _, err := svc.Create(context.Background(), contact.CreateInput{Email: "bob@example.com"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), contact.CreateInput{Email: "BOB@example.com"})
	if err != contact.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	repo := newMemRepo()
	svc := contact.NewService(repo)
	c, _ := svc.Create(context.Background(), contact.CreateInput{Email: "carol@example.com"})

	if err := svc.Unsubscribe(context.Background(), c.ID); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	subs, _ := repo.ListSubscribed(context.Background())
	if len(subs) != 0 {
		t.Fatalf("expected no subscribed contacts, got %d", len(subs))
	}
}

func TestImportCSV(t *testing.T) {
	repo := newMemRepo()
	svc := contact.NewService(repo)

	input := strings.Join([]string{
		"Full Name,Email Address,Company Name",
		"Alice,alice@example.com,Acme",
		"Bob,not-an-email,Beta",
		"Carol,carol@example.com,",
	}, "\n")

	res, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 1 {
		t.Fatalf("imported=%d skipped=%d", res.Imported, res.Skipped)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "invalid email") {
		t.Fatalf("errors: %v", res.Errors)
	}

	subs, _ := repo.ListSubscribed(context.Background())
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscribed contacts, got %d", len(subs))
	}
	if subs[0].Name != "Alice" || subs[0].Company != "Acme" {
		t.Fatalf("mapped fields wrong: %+v", subs[0])
	}
}

func TestImportCSVReimportIsIdempotent(t *testing.T) {
	svc := contact.NewService(newMemRepo())
	input := "email\ndave@example.com\n"

	if _, err := svc.ImportCSV(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("first import: %v", err)
	}
	res, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.Imported != 0 || res.Skipped != 1 {
		t.Fatalf("reimport: imported=%d skipped=%d", res.Imported, res.Skipped)
	}
}

func TestImportCSVNoEmailColumn(t *testing.T) {
	svc := contact.NewService(newMemRepo())
	_, err := svc.ImportCSV(context.Background(), strings.NewReader("name,phone\nAlice,123\n"))
	if err == nil {
		t.Fatal("expected error for missing email column")
	}
}
