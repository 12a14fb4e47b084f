package service

import (
	"fmt"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/validate"
)

// ResolveImageSource 上传文件优先，其次请求体里的 imageUrl
//
// 上传被拒（非图片/过大）时视为没有可用图片，不回落到 imageUrl。
// /uploads/<file> 只能由上传产生；请求体里的地址必须是 http(s) 绝对地址。
func ResolveImageSource(in domain.CreateItemInput) (string, error) {
	switch {
	case in.UploadRejected:
		return "", domain.ValidationMsg(domain.MsgImageRequired)
	case in.UploadName != "":
		return domain.UploadPathPrefix + in.UploadName, nil
	case in.ImageURL != "":
		if !validate.IsURL(in.ImageURL) {
			return "", domain.ValidationError(fmt.Errorf("imageUrl %q is not an absolute http(s) URL", in.ImageURL))
		}
		return in.ImageURL, nil
	}
	return "", domain.ValidationMsg(domain.MsgImageRequired)
}
