package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "aktif"
	ScheduleStatusInactive ScheduleStatus = "tidak-aktif"
	ScheduleStatusDone     ScheduleStatus = "selesai"
)

const DefaultDepartureTime = "08:00"

type Schedule struct {
	ScheduleID              uuid.UUID      `gorm:"column:schedule_id;type:uuid;primaryKey" json:"schedule_id"`
	ScheduleCode            string         `gorm:"column:schedule_code;type:varchar(40);not null;uniqueIndex:uq_schedules_code" json:"schedule_code"`
	ScheduleBookingID       *uuid.UUID     `gorm:"column:schedule_booking_id;type:uuid;uniqueIndex:uq_schedules_booking" json:"schedule_booking_id,omitempty"`
	SchedulePackageID       uuid.UUID      `gorm:"column:schedule_package_id;type:uuid;not null;index" json:"schedule_package_id"`
	ScheduleInstitutionName *string        `gorm:"column:schedule_institution_name;type:varchar(200)" json:"schedule_institution_name,omitempty"`
	ScheduleDepartureDate   time.Time      `gorm:"column:schedule_departure_date;type:date;not null;index" json:"schedule_departure_date"`
	ScheduleDepartureTime   string         `gorm:"column:schedule_departure_time;type:varchar(8);not null;default:'08:00'" json:"schedule_departure_time"`
	ScheduleStatus          ScheduleStatus `gorm:"column:schedule_status;type:varchar(16);not null;default:'aktif';index" json:"schedule_status"`
	ScheduleNotes           *string        `gorm:"column:schedule_notes" json:"schedule_notes,omitempty"`

	ScheduleCreatedAt time.Time `gorm:"column:schedule_created_at;autoCreateTime" json:"schedule_created_at"`
	ScheduleUpdatedAt time.Time `gorm:"column:schedule_updated_at;autoUpdateTime" json:"schedule_updated_at"`
}

func (Schedule) TableName() string { return "schedules" }

func (s *Schedule) BeforeCreate(*gorm.DB) error {
	if s.ScheduleID == uuid.Nil {
		s.ScheduleID = uuid.New()
	}
	return nil
}
