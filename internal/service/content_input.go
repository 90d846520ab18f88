package service

import (
	"strings"
	"time"

	"github.com/notaryweb/internal/db"
)

// Flags 描述所有内容共享的可选字段：是否启用与排序值。
// 指针为 nil 表示请求中未提供该字段，更新时保持原值。
type Flags struct {
	Active *bool `json:"active"`
	Order  *int  `json:"order"`
}

// HasOrder reports whether the payload pins an explicit position.
func (f Flags) HasOrder() bool {
	return f.Order != nil
}

func (f Flags) apply(record *db.Record, position *int) {
	if f.Active != nil {
		record.Active = *f.Active
	}
	if position != nil && f.Order != nil {
		*position = *f.Order
	}
}

func assignString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// BannerInput 创建或更新轮播图时可设置的字段
type BannerInput struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	ImageURL *string `json:"imageUrl"`
	LinkURL  *string `json:"linkUrl"`
	Flags
}

func (in BannerInput) Apply(item *db.Banner) {
	assignString(&item.Title, in.Title)
	assignString(&item.Subtitle, in.Subtitle)
	assignString(&item.ImageURL, in.ImageURL)
	assignString(&item.LinkURL, in.LinkURL)
	in.Flags.apply(&item.Record, &item.SortOrder)
}

// OfficeServiceInput 创建或更新服务项目时可设置的字段
type OfficeServiceInput struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Flags
}

func (in OfficeServiceInput) Apply(item *db.OfficeService) {
	assignString(&item.Title, in.Title)
	assignString(&item.Summary, in.Summary)
	assignString(&item.Description, in.Description)
	assignString(&item.Icon, in.Icon)
	in.Flags.apply(&item.Record, &item.SortOrder)
}

// LinkInput 创建或更新外部链接时可设置的字段
type LinkInput struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
	Flags
}

func (in LinkInput) Apply(item *db.Link) {
	assignString(&item.Name, in.Name)
	assignString(&item.URL, in.URL)
	in.Flags.apply(&item.Record, &item.SortOrder)
}

// NewsInput 创建或更新新闻时可设置的字段。新闻按创建时间排序，order 会被忽略。
type NewsInput struct {
	Title       *string    `json:"title"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content"`
	ImageURL    *string    `json:"imageUrl"`
	PublishedAt *time.Time `json:"publishedAt"`
	Flags
}

func (in NewsInput) Apply(item *db.News) {
	assignString(&item.Title, in.Title)
	assignString(&item.Summary, in.Summary)
	assignString(&item.Content, in.Content)
	assignString(&item.ImageURL, in.ImageURL)
	if in.PublishedAt != nil {
		published := in.PublishedAt.UTC()
		item.PublishedAt = &published
	}
	in.Flags.apply(&item.Record, nil)
}

// PageInput 创建或更新信息页面时可设置的字段，slug 统一转为小写。
type PageInput struct {
	Slug    *string `json:"slug"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Flags
}

func (in PageInput) Apply(item *db.Page) {
	if in.Slug != nil {
		item.Slug = strings.ToLower(strings.TrimSpace(*in.Slug))
	}
	assignString(&item.Title, in.Title)
	assignString(&item.Content, in.Content)
	in.Flags.apply(&item.Record, nil)
}

// ReviewImageInput 创建或更新评价截图时可设置的字段
type ReviewImageInput struct {
	ImageURL *string `json:"imageUrl"`
	Caption  *string `json:"caption"`
	Author   *string `json:"author"`
	Width    *int    `json:"width"`
	Height   *int    `json:"height"`
	Flags
}

func (in ReviewImageInput) Apply(item *db.ReviewImage) {
	assignString(&item.ImageURL, in.ImageURL)
	assignString(&item.Caption, in.Caption)
	assignString(&item.Author, in.Author)
	if in.Width != nil {
		item.Width = *in.Width
	}
	if in.Height != nil {
		item.Height = *in.Height
	}
	in.Flags.apply(&item.Record, &item.SortOrder)
}

// AnnouncementInput 创建或更新公告时可设置的字段
type AnnouncementInput struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
	LinkURL *string `json:"linkUrl"`
	Flags
}

func (in AnnouncementInput) Apply(item *db.Announcement) {
	assignString(&item.Title, in.Title)
	assignString(&item.Message, in.Message)
	assignString(&item.LinkURL, in.LinkURL)
	in.Flags.apply(&item.Record, &item.SortOrder)
}
