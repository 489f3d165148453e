// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"lifeseed/internal/dates"
	"lifeseed/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("calendar_date", validateCalendarDate)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("task_status", validateTaskStatus)
		_ = v.RegisterValidation("task_priority", validateTaskPriority)
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("habit_log_status", validateHabitLogStatus)
	}
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	return dates.IsValid(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeInvest:
		return true
	}
	return false
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	switch models.TaskStatus(fl.Field().String()) {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted:
		return true
	}
	return false
}

func validateTaskPriority(fl validator.FieldLevel) bool {
	switch models.TaskPriority(fl.Field().String()) {
	case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
		return true
	}
	return false
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch models.AssetType(fl.Field().String()) {
	case models.AssetTypeUSStock, models.AssetTypeForex, models.AssetTypeCrypto, models.AssetTypeOther:
		return true
	}
	return false
}

func validateHabitLogStatus(fl validator.FieldLevel) bool {
	switch models.HabitLogStatus(fl.Field().String()) {
	case models.HabitLogDone, models.HabitLogMissed:
		return true
	}
	return false
}
