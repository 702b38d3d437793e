package entity

type Ebook struct {
	ID            int64  `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	TitleVi       string `json:"title_vi" db:"title_vi"`
	Description   string `json:"description" db:"description"`
	DescriptionVi string `json:"description_vi" db:"description_vi"`
	CoverImageURL string `json:"cover_image_url,omitempty" db:"cover_image_url"`
	FileURL       string `json:"file_url" db:"file_url"`
	CourseID      int64  `json:"course_id,omitempty" db:"course_id"`
	SortOrder     int    `json:"sort_order" db:"sort_order"`
	IsActive      bool   `json:"is_active" db:"is_active"`
}

// EbookAccess is an e-book as seen by one student: unlocked once the lesson
// matching its sort order is marked complete for that student's enrollment.
type EbookAccess struct {
	Ebook
	CourseName string `json:"course_name,omitempty"`
	IsUnlocked bool   `json:"is_unlocked"`
}
