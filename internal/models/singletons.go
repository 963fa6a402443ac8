package models

import "gorm.io/datatypes"

// The types in this file are singletons: at most one row per table.

type ExperienceEntry struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type About struct {
	Base
	Name         string                               `gorm:"type:varchar(100);not null" json:"name"`
	Title        string                               `gorm:"type:varchar(200);not null" json:"title"`
	Description  string                               `gorm:"type:text" json:"description"`
	Bio          string                               `gorm:"type:text" json:"bio"`
	Email        string                               `gorm:"type:varchar(100)" json:"email"`
	Phone        string                               `gorm:"type:varchar(50)" json:"phone"`
	Location     string                               `gorm:"type:varchar(200)" json:"location"`
	ProfileImage string                               `gorm:"type:text" json:"profileImage"`
	Experience   datatypes.JSONSlice[ExperienceEntry] `json:"experience"`
	Education    datatypes.JSONSlice[EducationEntry]  `json:"education"`
}

func (About) TableName() string { return "about" }

type SocialLinks struct {
	Base
	Github    string `gorm:"type:text" json:"github"`
	Linkedin  string `gorm:"type:text" json:"linkedin"`
	Twitter   string `gorm:"type:text" json:"twitter"`
	Instagram string `gorm:"type:text" json:"instagram"`
	Facebook  string `gorm:"type:text" json:"facebook"`
	Youtube   string `gorm:"type:text" json:"youtube"`
}

const DefaultResumeType = "application/pdf"

// Resume holds either an external URL or an inline base64 file, never both
type Resume struct {
	Base
	FileURL  string `gorm:"type:text" json:"fileUrl"`
	FileName string `gorm:"type:varchar(255)" json:"fileName"`
	FileData string `gorm:"type:text" json:"fileData"`
	FileType string `gorm:"type:varchar(100)" json:"fileType"`
}

func (Resume) TableName() string { return "resume" }

const (
	DefaultMinCoffee   = 1
	DefaultMaxCoffee   = 10
	DefaultCoffeePrice = 50
	DefaultCurrency    = "INR"
)

// Coffee is the pricing configuration for "buy me a coffee"
type Coffee struct {
	Base
	MinCoffee   int     `gorm:"not null;default:1" json:"minCoffee"`
	MaxCoffee   int     `gorm:"not null;default:10" json:"maxCoffee"`
	CoffeePrice float64 `gorm:"not null;default:50" json:"coffeePrice"`
	Currency    string  `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
}

func (Coffee) TableName() string { return "coffee" }

func DefaultCoffee() Coffee {
	return Coffee{
		MinCoffee:   DefaultMinCoffee,
		MaxCoffee:   DefaultMaxCoffee,
		CoffeePrice: DefaultCoffeePrice,
		Currency:    DefaultCurrency,
	}
}

type BankAccount struct {
	AccountNumber     string `gorm:"type:varchar(50)" json:"accountNumber"`
	IFSCCode          string `gorm:"type:varchar(20)" json:"ifscCode"`
	BankName          string `gorm:"type:varchar(100)" json:"bankName"`
	AccountHolderName string `gorm:"type:varchar(100)" json:"accountHolderName"`
}

type Payment struct {
	Base
	UpiID       string      `gorm:"type:varchar(100)" json:"upiId"`
	BankAccount BankAccount `gorm:"embedded;embeddedPrefix:bank_" json:"bankAccount"`
	QRCode      string      `gorm:"type:text" json:"qrCode"`
}

func (Payment) TableName() string { return "payment" }
