package access

import "github.com/taibui324/la-gougah/backend/models"

type Operation string

const (
	OpListPosts  Operation = "posts.list"
	OpGetPost    Operation = "posts.get"
	OpCreatePost Operation = "posts.create"
	OpUpdatePost Operation = "posts.update"
	OpDeletePost Operation = "posts.delete"

	OpListBanners   Operation = "banners.list"
	OpGetBanner     Operation = "banners.get"
	OpCreateBanner  Operation = "banners.create"
	OpUpdateBanner  Operation = "banners.update"
	OpDeleteBanner  Operation = "banners.delete"
	OpReorderBanner Operation = "banners.reorder"

	OpListMenuItems   Operation = "menu.list"
	OpGetMenuItem     Operation = "menu.get"
	OpCreateMenuItem  Operation = "menu.create"
	OpUpdateMenuItem  Operation = "menu.update"
	OpDeleteMenuItem  Operation = "menu.delete"
	OpReorderMenuItem Operation = "menu.reorder"

	OpListUsers  Operation = "users.list"
	OpGetUser    Operation = "users.get"
	OpCreateUser Operation = "users.create"
	OpUpdateUser Operation = "users.update"
	OpDeleteUser Operation = "users.delete"

	OpUpdateContactSettings Operation = "contact.update"
	OpListInquiries         Operation = "contact.inquiries"

	OpGenerateUploadURL Operation = "storage.upload"
)

var (
	staff     = []models.Role{models.RoleAdmin, models.RoleEditor}
	adminOnly = []models.Role{models.RoleAdmin}
)

var capabilities = map[Operation][]models.Role{
	OpListPosts:  staff,
	OpGetPost:    staff,
	OpCreatePost: staff,
	OpUpdatePost: staff,
	OpDeletePost: staff,

	OpListBanners:   staff,
	OpGetBanner:     staff,
	OpCreateBanner:  staff,
	OpUpdateBanner:  staff,
	OpDeleteBanner:  staff,
	OpReorderBanner: staff,

	OpListMenuItems:   staff,
	OpGetMenuItem:     staff,
	OpCreateMenuItem:  staff,
	OpUpdateMenuItem:  staff,
	OpDeleteMenuItem:  staff,
	OpReorderMenuItem: staff,

	OpListUsers:  adminOnly,
	OpGetUser:    adminOnly,
	OpCreateUser: adminOnly,
	OpUpdateUser: adminOnly,
	OpDeleteUser: adminOnly,

	OpUpdateContactSettings: adminOnly,
	OpListInquiries:         adminOnly,

	OpGenerateUploadURL: staff,
}
