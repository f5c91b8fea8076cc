package dto

// ── 家庭视图模块 DTO ──

// FamilyListsResponse 全家清单视图：所有成员 + 所有礼物
//
// 已预留礼物附带预留人公开信息；预留人已不存在时该礼物原样返回。
// "对礼物主人隐藏其礼物的预留状态"是展示层约定，由前端在渲染
// 本人清单时抑制，API 层不做裁剪。
type FamilyListsResponse struct {
	Users []UserResponse  `json:"users"`
	Gifts []*GiftResponse `json:"gifts"`
}
