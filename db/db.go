package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Instance stays nil when no face index is configured
var Instance *gorm.DB

// Init opens MySQL if mysqlDSN is set, otherwise SQLite if sqliteFile is set.
func Init(mysqlDSN, sqliteFile string) error {
	var dialector gorm.Dialector
	if mysqlDSN != "" {
		dialector = mysql.Open(mysqlDSN)
	} else if sqliteFile != "" {
		dialector = sqlite.Open(sqliteFile)
	} else {
		return nil
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	Instance = db
	return nil
}
