package controller

import (
	"gorm.io/gorm"

	noticeDTO "labadmin_backend/internals/features/notices/dto"
	noticeModel "labadmin_backend/internals/features/notices/model"
)

// composeNotices resolves the read representation for a page of notices in
// four batched queries: rows, contents, tags per content, completion counts.
// Row order is order_num ascending with row id as tiebreak.
func composeNotices(db *gorm.DB, notices []noticeModel.NoticeModel) ([]noticeDTO.NoticeDetail, error) {
	details := make([]noticeDTO.NoticeDetail, 0, len(notices))
	if len(notices) == 0 {
		return details, nil
	}

	noticeIDs := make([]uint, 0, len(notices))
	for _, n := range notices {
		noticeIDs = append(noticeIDs, n.NoticeID)
	}

	var rows []noticeModel.NoticeRowModel
	if err := db.Where("notice_row_notice_id IN ?", noticeIDs).
		Order("notice_row_order_num ASC, notice_row_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	contentIDs := make([]uint, 0, len(rows))
	seen := map[uint]bool{}
	for _, r := range rows {
		if !seen[r.NoticeRowContentID] {
			seen[r.NoticeRowContentID] = true
			contentIDs = append(contentIDs, r.NoticeRowContentID)
		}
	}

	contentByID := map[uint]noticeModel.NoticeContentModel{}
	tagsByContent := map[uint][]noticeModel.NoticeTagModel{}
	if len(contentIDs) > 0 {
		var contents []noticeModel.NoticeContentModel
		if err := db.Where("notice_content_id IN ?", contentIDs).
			Find(&contents).Error; err != nil {
			return nil, err
		}
		for _, ct := range contents {
			contentByID[ct.NoticeContentID] = ct
		}

		type taggedRow struct {
			ContentID uint                       `gorm:"column:content_id"`
			Tag       noticeModel.NoticeTagModel `gorm:"embedded"`
		}
		var tagged []taggedRow
		if err := db.Table("notice_content_tag").
			Select("notice_content_tag.notice_content_tag_content_id AS content_id, notice_tag.*").
			Joins("JOIN notice_tag ON notice_tag.notice_tag_id = notice_content_tag.notice_content_tag_tag_id").
			Where("notice_content_tag.notice_content_tag_content_id IN ?", contentIDs).
			Order("notice_tag.notice_tag_name ASC").
			Scan(&tagged).Error; err != nil {
			return nil, err
		}
		for _, t := range tagged {
			tagsByContent[t.ContentID] = append(tagsByContent[t.ContentID], t.Tag)
		}
	}

	type countRow struct {
		NoticeID uint  `gorm:"column:notice_id"`
		Total    int64 `gorm:"column:total"`
	}
	var counts []countRow
	if err := db.Table("notice_completion").
		Select("notice_completion_notice_id AS notice_id, COUNT(*) AS total").
		Where("notice_completion_notice_id IN ?", noticeIDs).
		Group("notice_completion_notice_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	completionByNotice := map[uint]int64{}
	for _, cr := range counts {
		completionByNotice[cr.NoticeID] = cr.Total
	}

	rowsByNotice := map[uint][]noticeModel.NoticeRowModel{}
	for _, r := range rows {
		rowsByNotice[r.NoticeRowNoticeID] = append(rowsByNotice[r.NoticeRowNoticeID], r)
	}

	for _, n := range notices {
		detail := noticeDTO.NoticeDetail{
			Notice:          n,
			Rows:            []noticeDTO.NoticeRowDetail{},
			CompletionCount: completionByNotice[n.NoticeID],
		}
		for _, r := range rowsByNotice[n.NoticeID] {
			content, ok := contentByID[r.NoticeRowContentID]
			if !ok {
				// dangling row, content was deleted out of band
				continue
			}
			tags := tagsByContent[r.NoticeRowContentID]
			if tags == nil {
				tags = []noticeModel.NoticeTagModel{}
			}
			detail.Rows = append(detail.Rows, noticeDTO.NoticeRowDetail{
				NoticeRowID:       r.NoticeRowID,
				NoticeRowOrderNum: r.NoticeRowOrderNum,
				Content:           content,
				Tags:              tags,
			})
		}
		details = append(details, detail)
	}
	return details, nil
}
