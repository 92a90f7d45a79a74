package postgres

import "github.com/roastline/beanbot/internal/domain/entity"

var Migrations = []interface{}{
	&entity.User{},
	&entity.Listing{},
	&entity.Offer{},
	&entity.Commission{},
	&entity.Message{},
	&entity.InventoryItem{},
	&entity.MaintenanceReport{},
	&entity.SentNotification{},
}
