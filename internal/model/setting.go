package model

// Setting is a flat key/value configuration row. Telegram credentials and
// store-level thresholds live here so they can change at runtime.
type Setting struct {
	BaseModel
	Key         string `gorm:"type:varchar(100);uniqueIndex;not null" json:"key" validate:"required"`
	Value       string `gorm:"type:text" json:"value"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}

// Well-known setting keys.
const (
	SettingTelegramBotToken   = "telegram_bot_token"
	SettingTelegramChatID     = "telegram_chat_id"
	SettingStoreName          = "store_name"
	SettingLowStockThreshold  = "low_stock_threshold"
	SettingAllowNegativeStock = "allow_negative_stock"
)

// DefaultSettings are seeded on first start.
var DefaultSettings = []Setting{
	{Key: SettingTelegramBotToken, Value: "", Description: "Telegram bot token"},
	{Key: SettingTelegramChatID, Value: "", Description: "Telegram chat id"},
	{Key: SettingStoreName, Value: "Victoria Store", Description: "Store display name"},
	{Key: SettingLowStockThreshold, Value: "5", Description: "Low stock alert threshold"},
	{Key: SettingAllowNegativeStock, Value: "true", Description: "Allow sales to drive stock below zero"},
}
