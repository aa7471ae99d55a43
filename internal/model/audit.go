package model

import "time"

// SeedingAudit is the manifest of one seeding batch, kept so the batch can be
// reversed later.
type SeedingAudit struct {
	ID             string        `bson:"_id" json:"auditId"`
	CreatedIDs     []string      `bson:"createdIds" json:"createdIds"`
	UpdatedItems   []AuditUpdate `bson:"updatedItems" json:"updatedItems"`
	CreatedCount   int           `bson:"createdCount" json:"createdCount"`
	UpdatedCount   int           `bson:"updatedCount" json:"updatedCount"`
	TotalProcessed int           `bson:"totalProcessed" json:"totalProcessed"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
}

type AuditUpdate struct {
	ID     string      `bson:"id" json:"id"`
	Before BeforeImage `bson:"before" json:"before"`
}

// BeforeImage holds the pre-seeding values of the fields a rollback replays.
// Only these three fields are ever reverted.
type BeforeImage struct {
	Latitude    *float64 `bson:"latitude" json:"latitude"`
	Longitude   *float64 `bson:"longitude" json:"longitude"`
	Description *string  `bson:"description" json:"description"`
}
