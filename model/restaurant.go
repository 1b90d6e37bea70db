package model

import (
	"time"

	"gorm.io/gorm"
)

type Restaurant struct {
	RestaurantID  int            `gorm:"column:id_restaurant;primaryKey;autoIncrement" json:"restaurant_id"`
	Name          string         `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Province      string         `gorm:"column:province;type:text;not null" json:"province"`
	ProvinceCode  *string        `gorm:"column:province_code;type:text" json:"province_code"` // can be nil, pointer
	District      string         `gorm:"column:district;type:text;not null" json:"district"`
	DistrictCode  *string        `gorm:"column:district_code;type:text" json:"district_code"` // can be nil, pointer
	AddressDetail string         `gorm:"column:address_detail;type:text;not null" json:"address_detail"`
	Type          string         `gorm:"column:type;type:text;not null" json:"type"`
	OpenTime      string         `gorm:"column:open_time;type:text;not null" json:"open_time"`
	CloseTime     string         `gorm:"column:close_time;type:text;not null" json:"close_time"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Rating        float64        `gorm:"column:rating;type:numeric;not null;default:0" json:"rating"`
	ImageURL      string         `gorm:"column:image_url;type:text" json:"image_url"`
	PricePerTable float64        `gorm:"column:price_per_table;type:numeric;not null;default:0" json:"price_per_table"`
	Latitude      float64        `gorm:"column:latitude;type:numeric" json:"latitude"`
	Longitude     float64        `gorm:"column:longitude;type:numeric" json:"longitude"`
	Viewed        int            `gorm:"column:viewed;type:integer;not null;default:0" json:"viewed"`
	BookingCount  int            `gorm:"column:booking_count;type:integer;not null;default:0" json:"booking_count"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurant"
}

// Address joins the address parts the way they are displayed.
func (r Restaurant) Address() string {
	return r.AddressDetail + ", " + r.District + ", " + r.Province
}
