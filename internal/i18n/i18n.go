// Package i18n holds the user-facing messages shown through the notifier.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The key doubles as the English text.
const (
	RequestFailed      = "request failed"
	NoPermission       = "no permission"
	BadRequest         = "bad request parameters"
	Unauthorized       = "unauthorized, please log in"
	Forbidden          = "forbidden"
	NotFound           = "resource not found"
	ServerError        = "server error"
	BadGateway         = "bad gateway"
	ServiceUnavailable = "service unavailable"
	GatewayTimeout     = "gateway timeout"
	NetworkErrorStatus = "network error (%d)"
	NetworkFailed      = "network connection failed"
	UploadFailed       = "upload failed"
	DownloadFailed     = "download failed"
	EmptyFilePath      = "file path is empty"
	LoginTitle         = "login required"
	LoginContent       = "Please log in to continue. Press OK to go to the login page."
	LoginConfirm       = "log in"
	LoginCancel        = "cancel"
	Uploading          = "uploading %d/%d"
	CheckPassed        = "content check passed"
	CheckReview        = "content needs manual review, please wait"
	CheckRisky         = "content contains prohibited material, please edit and retry"
	CheckUnavailable   = "content check unavailable"
	CheckNoticeTitle   = "notice"
	CheckRiskyTitle    = "content violation"
	CheckViolation     = "%s\nviolation type: %s"
	ModalOK            = "OK"

	LabelNormal    = "normal"
	LabelAd        = "advertising"
	LabelPolitics  = "politics"
	LabelPorn      = "pornography"
	LabelAbuse     = "abuse"
	LabelIllegal   = "illegal activity"
	LabelFraud     = "fraud"
	LabelVulgar    = "vulgar"
	LabelCopyright = "copyright"
	LabelOther     = "other violation"
	LabelUnknown   = "unknown"
)

var zhHans = map[string]string{
	RequestFailed:      "请求失败",
	NoPermission:       "无权限访问",
	BadRequest:         "请求参数错误",
	Unauthorized:       "未授权,请登录",
	Forbidden:          "禁止访问",
	NotFound:           "请求地址不存在",
	ServerError:        "服务器错误",
	BadGateway:         "网关错误",
	ServiceUnavailable: "服务不可用",
	GatewayTimeout:     "网关超时",
	NetworkErrorStatus: "网络错误 (%d)",
	NetworkFailed:      "网络连接失败",
	UploadFailed:       "上传失败",
	DownloadFailed:     "下载失败",
	EmptyFilePath:      "文件路径为空",
	LoginTitle:         "登录提醒",
	LoginContent:       "需要先登录才能继续操作哦～点击\"确定\"跳转登录页",
	LoginConfirm:       "确定登录",
	LoginCancel:        "取消",
	Uploading:          "上传中 %d/%d",
	CheckPassed:        "内容审核通过",
	CheckReview:        "内容需要人工审核，请耐心等待",
	CheckRisky:         "内容包含违规信息，请修改后重试",
	CheckUnavailable:   "内容安全检查异常",
	CheckNoticeTitle:   "提示",
	CheckRiskyTitle:    "内容违规",
	CheckViolation:     "%s\n违规类型：%s",
	ModalOK:            "确定",

	LabelNormal:    "正常",
	LabelAd:        "广告",
	LabelPolitics:  "时政",
	LabelPorn:      "色情",
	LabelAbuse:     "辱骂",
	LabelIllegal:   "违法犯罪",
	LabelFraud:     "欺诈",
	LabelVulgar:    "低俗",
	LabelCopyright: "版权",
	LabelOther:     "其他违规",
	LabelUnknown:   "未知",
}

var supportedTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supportedTags)

var builder = mustBuild()

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key := range zhHans {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
		if err := b.SetString(language.SimplifiedChinese, key, zhHans[key]); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
	}
	return b
}

// Translator renders message keys in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for the best supported match of locale.
// Unknown or empty locales fall back to English.
func New(locale string) *Translator {
	tag := Resolve(locale)
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

// English returns the English translator.
func English() *Translator { return New("en") }

// Resolve maps a locale string onto a supported tag.
func Resolve(locale string) language.Tag {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return language.English
	}
	parsed, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return language.English
	}
	return supportedTags[idx]
}

// Tag reports the resolved language.
func (t *Translator) Tag() language.Tag { return t.tag }

// Sprintf renders key with args.
func (t *Translator) Sprintf(key string, args ...any) string {
	if t == nil {
		return fmt.Sprintf(key, args...)
	}
	return t.printer.Sprintf(key, args...)
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}
