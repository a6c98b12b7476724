package db

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"table-order-backend/config"
	"table-order-backend/internal/model"
)

// DefaultMenu is the catalog loaded when the config does not provide one.
var DefaultMenu = []model.MenuItem{
	{Name: "Big Mac", PrepMinM: 2.0, PrepMaxM: 3.0},
	{Name: "Quarter Pounder with Cheese", PrepMinM: 2.5, PrepMaxM: 4.0},
	{Name: "Cheeseburger", PrepMinM: 1.0, PrepMaxM: 2.0},
	{Name: "McChicken", PrepMinM: 2.0, PrepMaxM: 3.0},
	{Name: "Filet-O-Fish", PrepMinM: 2.5, PrepMaxM: 4.0},
	{Name: "Chicken McNuggets (10 pieces)", PrepMinM: 3.0, PrepMaxM: 5.0},
	{Name: "French Fries (Medium)", PrepMinM: 1.5, PrepMaxM: 2.5},
	{Name: "French Fries (Large)", PrepMinM: 1.5, PrepMaxM: 2.5},
	{Name: "McFlurry", PrepMinM: 1.0, PrepMaxM: 2.0},
	{Name: "Apple Pie", PrepMinM: 1.5, PrepMaxM: 2.0},
	{Name: "Egg McMuffin", PrepMinM: 2.0, PrepMaxM: 3.5},
	{Name: "Sausage McMuffin", PrepMinM: 2.0, PrepMaxM: 3.5},
	{Name: "Bacon, Egg & Cheese Biscuit", PrepMinM: 2.0, PrepMaxM: 3.5},
	{Name: "Iced Coffee", PrepMinM: 1.0, PrepMaxM: 1.5},
	{Name: "McCafe Latte", PrepMinM: 2.0, PrepMaxM: 3.0},
}

// MenuFromConfig converts configured seed entries, falling back to DefaultMenu.
func MenuFromConfig(cfg *config.MenuConfig) []model.MenuItem {
	if cfg == nil || len(cfg.Items) == 0 {
		return DefaultMenu
	}
	items := make([]model.MenuItem, len(cfg.Items))
	for i, it := range cfg.Items {
		items[i] = model.MenuItem{Name: it.Name, PrepMinM: it.PrepMinM, PrepMaxM: it.PrepMaxM}
	}
	return items
}

// SeedMenu fills the menu table when it is empty. An existing catalog is left
// untouched so a persistent database keeps its item ids across restarts.
func SeedMenu(db *gorm.DB, items []model.MenuItem) error {
	for i, it := range items {
		if it.Name == "" || it.PrepMinM < 0 || it.PrepMaxM < it.PrepMinM {
			return fmt.Errorf("invalid menu item %d (%q, %g-%g)", i, it.Name, it.PrepMinM, it.PrepMaxM)
		}
	}

	var count int64
	if err := db.Model(&model.MenuItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count menu items: %w", err)
	}
	if count > 0 {
		log.Printf("Menu already holds %d items; skipping seed.", count)
		return nil
	}
	if len(items) == 0 {
		return nil
	}

	// Copy so callers' slices (DefaultMenu in particular) never receive ids.
	rows := make([]model.MenuItem, len(items))
	copy(rows, items)
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}
	log.Printf("Filled menu with %d items.", len(rows))
	return nil
}
