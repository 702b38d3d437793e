package service

import (
	"fmt"

	"github.com/eboniejc/muse-app/internal/entity"
)

// The e-book library always has something to show. When the database has no
// ebooks rows yet, or cannot be read at all, this static catalog of learning
// materials is served with every item locked.
var fallbackEbookLinks = []string{
	"https://drive.google.com/file/d/161qr5Le9QUn_TaB3RGWeWEGLOhBM-u_r/view?usp=drive_link",
	"https://drive.google.com/file/d/1UWl48BPet3P6GdN9MyxBMHfr9yCDN8K5/view?usp=drive_link",
	"https://drive.google.com/file/d/1HbHh39duXPRaHdg0DcmEcCPvMHDNaHcL/view?usp=drive_link",
	"https://drive.google.com/file/d/1q8z50bCissHMCegmVg-QXnrLCFjCZs53/view?usp=drive_link",
	"https://drive.google.com/file/d/1IirRh5Rs8SlOO4NIB0yi02gv3M09BZaD/view?usp=drive_link",
	"https://drive.google.com/file/d/1iWQPll_P1VT3Rtos-MTkwcPP1GHBKaMG/view?usp=drive_link",
	"https://drive.google.com/file/d/1hxHELh9eBGgFVC_Ksyx2sHKmP78__vWF/view?usp=drive_link",
	"https://drive.google.com/file/d/1FfYtCPA5sX25fp51c-M5zswXmtdRTzvJ/view?usp=drive_link",
	"https://drive.google.com/file/d/1LTX6jfHmX6lnO6LTps6ocAAd2f8IiKyz/view?usp=drive_link",
	"https://drive.google.com/file/d/1VMlIhFOJ2MK7Pt6esdEJpvf22fWuMMma/view?usp=drive_link",
	"https://drive.google.com/file/d/1AyINHC7I3aqR8o2NooIaEuUfXTdSfi2c/view?usp=drive_link",
	"https://drive.google.com/file/d/1szF0laTSgjENv1WGXRQw6bC2W_UoUSfi/view?usp=drive_link",
	"https://drive.google.com/file/d/1gkdCxt6O9EDNrsbrjm_GY5xczm5cIsYQ/view?usp=drive_link",
	"https://drive.google.com/file/d/15VyzWtEOALjx5mfu-Yv50so6g6Z8fUN7/view?usp=drive_link",
	"https://drive.google.com/file/d/1339VfTCqY62bRuOZMqQ9PwZJOtk20FBR/view?usp=drive_link",
	"https://drive.google.com/file/d/1tJHhA3fJSnNkxEX24yAgcwDMMowAD1XN/view?usp=drive_link",
	"https://docs.google.com/document/d/1O-Iu4z3rvc94w5F6fkDwERw6Z79G5V9d/edit?usp=drive_link&ouid=109745014509333769352&rtpof=true&sd=true",
}

func fallbackEbooks() []*entity.EbookAccess {
	out := make([]*entity.EbookAccess, 0, len(fallbackEbookLinks))
	for i, fileURL := range fallbackEbookLinks {
		out = append(out, &entity.EbookAccess{
			Ebook: entity.Ebook{
				ID:            -int64(i + 1),
				Title:         fmt.Sprintf("E-book %d", i+1),
				TitleVi:       fmt.Sprintf("E-book %d", i+1),
				Description:   fmt.Sprintf("DJ learning material #%d", i+1),
				DescriptionVi: fmt.Sprintf("Tài liệu học DJ #%d", i+1),
				FileURL:       fileURL,
				SortOrder:     i,
			},
			IsUnlocked: false,
		})
	}
	return out
}
