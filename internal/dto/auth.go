package dto

// ── 身份与成员模块 DTO ──

// CreateFamilyRequest 创建家庭请求（同时创建第一位成员）
type CreateFamilyRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
}

// JoinFamilyRequest 凭邀请码加入家庭请求
// 邀请码在服务端做归一化（去空白、转大写）后再查找
type JoinFamilyRequest struct {
	FamilyCode  string `json:"familyCode"  binding:"required"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
}

// FamilyResponse 家庭公开信息
type FamilyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// UserResponse 成员公开信息
type UserResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// AuthResponse 创建/加入家庭的返回：凭证 + 家庭 + 成员
type AuthResponse struct {
	Token  string         `json:"token"`
	Family FamilyResponse `json:"family"`
	User   UserResponse   `json:"user"`
}

// IdentityResponse 当前登录身份（GET /api/me）
type IdentityResponse struct {
	User   UserResponse   `json:"user"`
	Family FamilyResponse `json:"family"`
}
