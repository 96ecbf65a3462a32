package dto

type LogListQuery struct {
	Level  string `query:"level"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type UserListQuery struct {
	Role string `query:"role"`
}
