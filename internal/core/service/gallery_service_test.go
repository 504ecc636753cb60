package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
	"github.com/mustardworks/portfolio-api/internal/infrastructure/db/memory"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func seedGallery(t *testing.T, svc *GalleryService) (active, hidden *domain.GalleryItem) {
	t.Helper()
	ctx := context.Background()
	var err error
	active, err = svc.Create(ctx, admin, ports.CreateGalleryInput{
		Title: "Solar EV charger", Description: "Off-grid charging", Category: domain.CategoryEVehicles, Image: "https://img.example.com/ev.jpg",
	})
	if err != nil {
		t.Fatalf("create active: %v", err)
	}
	hidden, err = svc.Create(ctx, admin, ports.CreateGalleryInput{
		Title: "Draft robot", Description: "Not ready", Category: domain.CategoryAI, Image: "https://img.example.com/ai.jpg", IsActive: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("create hidden: %v", err)
	}
	return active, hidden
}

func TestGalleryService_Create_DefaultsActive(t *testing.T) {
	svc := NewGalleryService(memory.NewGalleryRepository(), zerolog.Nop())
	active, hidden := seedGallery(t, svc)

	if !active.IsActive || hidden.IsActive {
		t.Fatalf("unexpected active flags: %v %v", active.IsActive, hidden.IsActive)
	}
	if active.CreatedBy != admin.ID {
		t.Fatalf("expected createdBy to be the admin, got %q", active.CreatedBy)
	}
}

func TestGalleryService_List_HidesInactiveFromPublic(t *testing.T) {
	svc := NewGalleryService(memory.NewGalleryRepository(), zerolog.Nop())
	seedGallery(t, svc)

	public, err := svc.List(context.Background(), ports.GalleryFilter{Active: boolPtr(false)}, false)
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if public.Total != 1 || !public.Items[0].IsActive {
		t.Fatalf("public listing must only show active items, got %+v", public.Items)
	}
	if public.Limit != defaultGalleryLimit {
		t.Fatalf("expected gallery default limit %d, got %d", defaultGalleryLimit, public.Limit)
	}

	all, err := svc.List(context.Background(), ports.GalleryFilter{}, true)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("admin listing should include inactive items, got %d", all.Total)
	}

	inactive, _ := svc.List(context.Background(), ports.GalleryFilter{Active: boolPtr(false)}, true)
	if inactive.Total != 1 || inactive.Items[0].IsActive {
		t.Fatalf("admin isActive=false filter failed: %+v", inactive.Items)
	}
}

func TestGalleryService_List_CategoryAllMeansNoFilter(t *testing.T) {
	svc := NewGalleryService(memory.NewGalleryRepository(), zerolog.Nop())
	seedGallery(t, svc)

	page, _ := svc.List(context.Background(), ports.GalleryFilter{Category: domain.CategoryAll}, true)
	if page.Total != 2 {
		t.Fatalf("category=all should not filter, got %d", page.Total)
	}
	page, _ = svc.List(context.Background(), ports.GalleryFilter{Category: domain.CategoryAI}, true)
	if page.Total != 1 {
		t.Fatalf("category=ai should match one item, got %d", page.Total)
	}
}

func TestGalleryService_Get(t *testing.T) {
	svc := NewGalleryService(memory.NewGalleryRepository(), zerolog.Nop())
	active, hidden := seedGallery(t, svc)

	if _, err := svc.Get(context.Background(), active.ID, false); err != nil {
		t.Fatalf("public get of active item: %v", err)
	}
	if _, err := svc.Get(context.Background(), hidden.ID, false); !errors.Is(err, domain.ErrGalleryItemNotFound) {
		t.Fatalf("inactive item must look missing to the public, got %v", err)
	}
	if _, err := svc.Get(context.Background(), hidden.ID, true); err != nil {
		t.Fatalf("admin get of inactive item: %v", err)
	}
}

func TestGalleryService_Update(t *testing.T) {
	svc := NewGalleryService(memory.NewGalleryRepository(), zerolog.Nop())
	active, _ := seedGallery(t, svc)

	updated, err := svc.Update(context.Background(), active.ID, ports.GalleryPatch{Title: strPtr("Solar EV charger v2"), IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Solar EV charger v2" || updated.IsActive {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Description != active.Description {
		t.Fatalf("untouched fields must be kept")
	}

	same, err := svc.Update(context.Background(), active.ID, ports.GalleryPatch{})
	if err != nil || same.Title != "Solar EV charger v2" {
		t.Fatalf("empty patch should return the stored item, got %+v %v", same, err)
	}
	if _, err := svc.Update(context.Background(), "missing", ports.GalleryPatch{Title: strPtr("x")}); !errors.Is(err, domain.ErrGalleryItemNotFound) {
		t.Fatalf("expected ErrGalleryItemNotFound, got %v", err)
	}
}

func TestGalleryService_Categories(t *testing.T) {
	svc := NewGalleryService(memory.NewGalleryRepository(), zerolog.Nop())
	seedGallery(t, svc)
	if _, err := svc.Create(context.Background(), admin, ports.CreateGalleryInput{
		Title: "Bike conversion", Description: "Hub motor kit", Category: domain.CategoryEVehicles, Image: "https://img.example.com/bike.jpg",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	cats, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected all + e-vehicles, got %+v", cats)
	}
	if cats[0].ID != domain.CategoryAll || cats[0].Name != "All Projects" || cats[0].Count != 2 {
		t.Fatalf("unexpected all entry: %+v", cats[0])
	}
	if cats[1].ID != domain.CategoryEVehicles || cats[1].Name != "E-Vehicles" || cats[1].Count != 2 {
		t.Fatalf("unexpected category entry: %+v", cats[1])
	}
}
