package db

import (
	"github.com/beacon-dev/beacon/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError turns driver duplicate-key and FK failures into
	// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated, which the
	// services map onto the error taxonomy.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.StatusPage{},
		&models.Component{},
		&models.Incident{},
		&models.IncidentUpdate{},
		&models.MaintenanceWindow{},
		&models.IncidentComponent{},
		&models.MaintenanceComponent{},
	}

	migrator := db.Migrator()

	for _, model := range tables {
		if !migrator.HasTable(model) {
			if err := db.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
