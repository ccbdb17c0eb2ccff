package code

import "net/http"

// 成功码
var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
)

// 通用错误码
var (
	Failed               = NewError(0, http.StatusOK, lang{en: "Failed", zh_cn: "失败"})
	ErrorServerInternal  = NewError(10000, http.StatusInternalServerError, lang{en: "Server Internal Error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, http.StatusUnprocessableEntity, lang{en: "Invalid Params", zh_cn: "入参错误"})
	ErrorTooManyRequests = NewError(10002, http.StatusTooManyRequests, lang{en: "Too Many Requests", zh_cn: "请求过多"})
	ErrorNotFound        = NewError(10004, http.StatusNotFound, lang{en: "Resource Not Found", zh_cn: "资源不存在"})
)

// 业务错误码
var (
	ErrorNoteNotFound       = NewError(20001, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorNoteCreateFailed   = NewError(20002, http.StatusOK, lang{en: "Note create failed", zh_cn: "笔记创建失败"})
	ErrorNoteUpdateFailed   = NewError(20003, http.StatusOK, lang{en: "Note update failed", zh_cn: "笔记更新失败"})
	ErrorNoteDeleteFailed   = NewError(20004, http.StatusOK, lang{en: "Note delete failed", zh_cn: "笔记删除失败"})
	ErrorNoteListFailed     = NewError(20005, http.StatusOK, lang{en: "Note list failed", zh_cn: "笔记列表获取失败"})
	ErrorSearchFailed       = NewError(20101, http.StatusOK, lang{en: "Search failed", zh_cn: "搜索失败"})
	ErrorSubscriptionFailed = NewError(20201, http.StatusOK, lang{en: "Subscription save failed", zh_cn: "订阅保存失败"})
)
