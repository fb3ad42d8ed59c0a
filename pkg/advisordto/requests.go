package advisordto

type RequestMeta struct {
	SessionID string
	Room      string
	Sender    string
}

type StartSessionRequest struct {
	Meta    RequestMeta
	Side    string
	Profile string
}

type StartSessionResponse struct {
	State   *SessionState
	Resumed bool
}

type SnapshotRequest struct {
	Meta  RequestMeta
	Seq   int64
	Cells [][]string
}

type SnapshotResponse struct {
	State  *SessionState
	Report *AnalysisReport
}

type StatusRequest struct {
	Meta RequestMeta
}

type StatusResponse struct {
	State *SessionState
}

type RecommendRequest struct {
	Meta RequestMeta
}

type RecommendResponse struct {
	Report *AnalysisReport
}

type SummaryRequest struct {
	Meta RequestMeta
}

type SummaryResponse struct {
	Summary string
}

type ResetRequest struct {
	Meta RequestMeta
}

type ResetResponse struct {
	State *SessionState
}

type EndSessionRequest struct {
	Meta RequestMeta
}

type EndSessionResponse struct {
	Record *SessionRecord
}

type HistoryRequest struct {
	Meta  RequestMeta
	Limit int
}

type HistoryResponse struct {
	Sessions []*SessionRecord
}

type SetProfileRequest struct {
	Meta RequestMeta
	Name string
}

type SetProfileResponse struct {
	State   *SessionState
	Profile *ProfileInfo
}

type ProfilesRequest struct {
	Meta RequestMeta
}

type ProfilesResponse struct {
	Profiles []*ProfileInfo
}
