package db

import "time"

// Banner 首页轮播图
type Banner struct {
	Record
	Ordered
	Title    string `gorm:"size:160;not null" json:"title" validate:"required,max=160"`
	Subtitle string `gorm:"size:255" json:"subtitle" validate:"max=255"`
	ImageURL string `gorm:"size:500;not null" json:"imageUrl" validate:"required,max=500,href"`
	LinkURL  string `gorm:"size:500" json:"linkUrl" validate:"omitempty,max=500,href"`
}

// TableName 指定表名
func (Banner) TableName() string {
	return "banners"
}

// OfficeService 描述公证处对外提供的一项服务，例如授权书、认证、遗嘱等。
type OfficeService struct {
	Record
	Ordered
	Title       string `gorm:"size:160;not null" json:"title" validate:"required,max=160"`
	Summary     string `gorm:"size:500" json:"summary" validate:"max=500"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:60" json:"icon" validate:"max=60"`

	DescriptionHTML string `gorm:"-" json:"descriptionHtml,omitempty"`
}

// TableName 指定表名
func (OfficeService) TableName() string {
	return "office_services"
}

// Link 常用外部链接，例如法院与登记机关网站。
type Link struct {
	Record
	Ordered
	Name string `gorm:"size:120;not null" json:"name" validate:"required,max=120"`
	URL  string `gorm:"size:500;not null" json:"url" validate:"required,max=500,weburl"`
}

// TableName 指定表名
func (Link) TableName() string {
	return "links"
}

// News 新闻条目，按创建时间倒序展示。
type News struct {
	Record
	Title       string     `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Summary     string     `gorm:"size:500" json:"summary" validate:"max=500"`
	Content     string     `gorm:"type:text;not null" json:"content" validate:"required"`
	ImageURL    string     `gorm:"size:500" json:"imageUrl" validate:"omitempty,max=500,href"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	ContentHTML string `gorm:"-" json:"contentHtml,omitempty"`
}

// TableName 指定表名
func (News) TableName() string {
	return "news"
}

// Page represents a standalone informational page addressed by slug.
type Page struct {
	Record
	Slug    string `gorm:"size:120;uniqueIndex;not null" json:"slug" validate:"required,max=120,slug"`
	Title   string `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Content string `gorm:"type:text;not null" json:"content" validate:"required"`

	ContentHTML string `gorm:"-" json:"contentHtml,omitempty"`
}

// TableName 指定表名
func (Page) TableName() string {
	return "pages"
}

// ReviewImage 客户评价截图
type ReviewImage struct {
	Record
	Ordered
	ImageURL string `gorm:"size:500;not null" json:"imageUrl" validate:"required,max=500,href"`
	Caption  string `gorm:"size:255" json:"caption" validate:"max=255"`
	Author   string `gorm:"size:120" json:"author" validate:"max=120"`
	Width    int    `json:"width" validate:"gte=0"`
	Height   int    `json:"height" validate:"gte=0"`
}

// TableName 指定表名
func (ReviewImage) TableName() string {
	return "review_images"
}

// Announcement 站点顶部公告
type Announcement struct {
	Record
	Ordered
	Title   string `gorm:"size:160;not null" json:"title" validate:"required,max=160"`
	Message string `gorm:"type:text;not null" json:"message" validate:"required,max=2000"`
	LinkURL string `gorm:"size:500" json:"linkUrl" validate:"omitempty,max=500,href"`
}

// TableName 指定表名
func (Announcement) TableName() string {
	return "announcements"
}
