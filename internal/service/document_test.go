package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
)

func newIngest(fx *fixtures, blobs *fakeBlobStore, usage *fakeUsageLimiter) *documentIngest {
	return NewDocumentIngest(
		&fakeDocumentRepo{fx: fx},
		&fakeFolderRepo{fx: fx},
		blobs,
		usage,
		testLogger(),
	).(*documentIngest)
}

func ingestFixtures() *fixtures {
	fx := newFixtures()
	fx.addCompany(1, "Acme")
	fx.addDepartment(10, 1, "Finance")
	fx.addFolder(100, 1, 10, "Invoices")
	return fx
}

func createRequest() *services.CreateDocumentRequest {
	body := "%PDF-1.4 test"
	return &services.CreateDocumentRequest{
		UserID:           7,
		CompanyID:        1,
		DepartmentID:     id64(10),
		FolderID:         id64(100),
		Name:             "Invoice March",
		OriginalFilename: "invoice-march.pdf",
		Size:             int64(len(body)),
		Content:          strings.NewReader(body),
	}
}

func TestCreateStoresBlobAndRow(t *testing.T) {
	fx := ingestFixtures()
	blobs := newFakeBlobStore()
	usage := &fakeUsageLimiter{allow: true}
	svc := newIngest(fx, blobs, usage)

	doc, err := svc.Create(context.Background(), openContext(), createRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.ID == 0 {
		t.Error("document did not get an ID")
	}
	if doc.BlobKey == "" || !strings.HasSuffix(doc.BlobKey, ".pdf") {
		t.Errorf("blob key = %q, want uuid with .pdf extension", doc.BlobKey)
	}
	if _, ok := blobs.objects[doc.BlobKey]; !ok {
		t.Error("blob content was not stored")
	}
	if _, ok := fx.documents[doc.ID]; !ok {
		t.Error("document row was not stored")
	}
	if len(usage.actions) != 1 || usage.actions[0] != models.ActionUpload {
		t.Errorf("usage actions = %v, want one upload", usage.actions)
	}
}

func TestCreateRequiresCapability(t *testing.T) {
	svc := newIngest(ingestFixtures(), newFakeBlobStore(), &fakeUsageLimiter{allow: true})

	pctx := openContext()
	pctx.Capabilities = models.CapabilitySet{models.CapView: true}

	var forbidden *domain.ForbiddenError
	if _, err := svc.Create(context.Background(), pctx, createRequest()); !errors.As(err, &forbidden) {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestCreateValidatesRequest(t *testing.T) {
	svc := newIngest(ingestFixtures(), newFakeBlobStore(), &fakeUsageLimiter{allow: true})

	req := createRequest()
	req.Name = ""

	if _, err := svc.Create(context.Background(), openContext(), req); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestCreateRestrictedCompany(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := newIngest(ingestFixtures(), blobs, &fakeUsageLimiter{allow: true})

	pctx := openContext()
	pctx.Companies = models.RestrictTo(2)

	var forbidden *domain.ForbiddenError
	if _, err := svc.Create(context.Background(), pctx, createRequest()); !errors.As(err, &forbidden) {
		t.Fatalf("got %v, want forbidden", err)
	}
	if len(blobs.objects) != 0 {
		t.Error("blob stored despite restriction")
	}
}

// The folder must live in the (company, department) pair the request names.
func TestCreateFolderAncestryMismatch(t *testing.T) {
	fx := ingestFixtures()
	fx.addDepartment(11, 1, "Legal")
	svc := newIngest(fx, newFakeBlobStore(), &fakeUsageLimiter{allow: true})

	req := createRequest()
	req.DepartmentID = id64(11)

	var notFound *domain.NotFoundError
	if _, err := svc.Create(context.Background(), openContext(), req); !errors.As(err, &notFound) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestCreateQuotaReached(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := newIngest(ingestFixtures(), blobs, &fakeUsageLimiter{allow: false})

	if _, err := svc.Create(context.Background(), openContext(), createRequest()); !errors.Is(err, domain.ErrQuotaReached) {
		t.Fatalf("got %v, want quota reached", err)
	}
	if len(blobs.objects) != 0 {
		t.Error("blob stored despite exhausted quota")
	}
}

func TestCreateBlobFailureSkipsInsert(t *testing.T) {
	fx := ingestFixtures()
	blobs := newFakeBlobStore()
	blobs.putErr = errors.New("connection reset")
	svc := newIngest(fx, blobs, &fakeUsageLimiter{allow: true})

	var storageErr *domain.StorageError
	if _, err := svc.Create(context.Background(), openContext(), createRequest()); !errors.As(err, &storageErr) {
		t.Fatalf("got %v, want storage error", err)
	}
	if len(fx.documents) != 0 {
		t.Error("document row created despite blob failure")
	}
}

// A failed insert unwinds the blob so storage holds no orphaned bytes.
func TestCreateInsertFailureDeletesBlob(t *testing.T) {
	fx := ingestFixtures()
	fx.errOn["document_create"] = errors.New("deadlock detected")
	blobs := newFakeBlobStore()
	svc := newIngest(fx, blobs, &fakeUsageLimiter{allow: true})

	if _, err := svc.Create(context.Background(), openContext(), createRequest()); err == nil {
		t.Fatal("expected error")
	}
	if len(blobs.objects) != 0 {
		t.Errorf("blob left behind: %d objects", len(blobs.objects))
	}
	if len(blobs.deleted) != 1 {
		t.Errorf("deleted %d blobs, want 1", len(blobs.deleted))
	}
}

func seedStoredDocument(fx *fixtures, blobs *fakeBlobStore) {
	fx.addDocument(1000, 1, id64(10), id64(100), "invoice-2024")
	d := fx.documents[1000]
	d.BlobKey = "stored.pdf"
	fx.documents[1000] = d
	blobs.objects["stored.pdf"] = []byte("stored bytes")
}

func TestOpenStreamsContent(t *testing.T) {
	fx := ingestFixtures()
	blobs := newFakeBlobStore()
	seedStoredDocument(fx, blobs)
	usage := &fakeUsageLimiter{allow: true}
	svc := newIngest(fx, blobs, usage)

	content, err := svc.Open(context.Background(), openContext(), 7, 1000)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer content.Body.Close()

	data, err := io.ReadAll(content.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "stored bytes" {
		t.Errorf("body = %q, want %q", data, "stored bytes")
	}
	if content.Document.ID != 1000 {
		t.Errorf("document ID = %d, want 1000", content.Document.ID)
	}
	if len(usage.actions) != 1 || usage.actions[0] != models.ActionDownload {
		t.Errorf("usage actions = %v, want one download", usage.actions)
	}
}

func TestOpenRequiresDownloadCapability(t *testing.T) {
	fx := ingestFixtures()
	blobs := newFakeBlobStore()
	seedStoredDocument(fx, blobs)
	svc := newIngest(fx, blobs, &fakeUsageLimiter{allow: true})

	pctx := openContext()
	pctx.Capabilities = models.CapabilitySet{models.CapView: true}

	var forbidden *domain.ForbiddenError
	if _, err := svc.Open(context.Background(), pctx, 7, 1000); !errors.As(err, &forbidden) {
		t.Fatalf("got %v, want forbidden", err)
	}
}

// Restricted documents read as missing, not as denied.
func TestOpenRestrictedReadsAsMissing(t *testing.T) {
	fx := ingestFixtures()
	blobs := newFakeBlobStore()
	seedStoredDocument(fx, blobs)
	svc := newIngest(fx, blobs, &fakeUsageLimiter{allow: true})

	pctx := openContext()
	pctx.Companies = models.RestrictTo(2)

	var notFound *domain.NotFoundError
	if _, err := svc.Open(context.Background(), pctx, 7, 1000); !errors.As(err, &notFound) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestOpenQuotaReached(t *testing.T) {
	fx := ingestFixtures()
	blobs := newFakeBlobStore()
	seedStoredDocument(fx, blobs)
	svc := newIngest(fx, blobs, &fakeUsageLimiter{allow: false})

	if _, err := svc.Open(context.Background(), openContext(), 7, 1000); !errors.Is(err, domain.ErrQuotaReached) {
		t.Fatalf("got %v, want quota reached", err)
	}
}
