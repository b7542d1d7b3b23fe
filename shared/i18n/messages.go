package i18n

import "github.com/vasapolrittideah/school-site-api/shared/provider"

// Application message keys.
const (
	MsgAllFieldsRequired    = "all-fields-required"
	MsgCredentialsRequired  = "credentials-required"
	MsgProfileNotFound      = "profile-not-found"
	MsgAccountBanned        = "account-banned"
	MsgInvalidRole          = "invalid-role"
	MsgRegistered           = "registered"
	MsgLoggedIn             = "logged-in"
	MsgLoggedOut            = "logged-out"
	MsgRoleUpdated          = "role-updated"
	MsgUserBanned           = "user-banned"
	MsgUserUnbanned         = "user-unbanned"
	MsgDisplayNameUpdated   = "display-name-updated"
	MsgDisplayNameRequired  = "display-name-required"
	MsgContactSent          = "contact-sent"
	MsgNewsletterSubscribed = "newsletter-subscribed"
	MsgInvalidRequestBody   = "invalid-request-body"
	MsgUnauthorized         = "unauthorized"
	MsgForbidden            = "forbidden"
	MsgTooManyRequests      = "too-many-requests"
	MsgInternal             = "internal-error"
	MsgGoogleTokenRequired  = "google-token-required"
	MsgSessionExpired       = "session-expired"
	MsgNotSignedIn          = "not-signed-in"
)

var turkish = map[string]string{
	provider.CodeEmailAlreadyInUse:   "Bu e-posta adresi zaten kullanılmaktadır.",
	provider.CodeWeakPassword:        "Şifre en az 6 karakter olmalıdır.",
	provider.CodeInvalidEmail:        "Geçersiz e-posta adresi.",
	provider.CodeUserNotFound:        "Kullanıcı bulunamadı.",
	provider.CodeWrongPassword:       "Yanlış şifre.",
	provider.CodeDifferentCredential: "Bu e-posta adresine farklı bir hesap bağlıdır.",
	provider.CodeUserDisabled:        "Bu hesap devre dışı bırakılmıştır.",

	MsgAllFieldsRequired:    "Tüm alanlar zorunludur.",
	MsgCredentialsRequired:  "E-posta ve şifre gereklidir.",
	MsgProfileNotFound:      "Kullanıcı bulunamadı.",
	MsgAccountBanned:        "Bu hesap engellenmiştir.",
	MsgInvalidRole:          "Geçersiz rol.",
	MsgRegistered:           "Hesap başarıyla oluşturuldu.",
	MsgLoggedIn:             "Başarıyla giriş yaptınız.",
	MsgLoggedOut:            "Başarıyla çıkış yaptınız.",
	MsgRoleUpdated:          "Rol başarıyla güncellendi.",
	MsgUserBanned:           "Kullanıcı engellenmiştir.",
	MsgUserUnbanned:         "Kullanıcı engeli kaldırılmıştır.",
	MsgDisplayNameUpdated:   "Kullanıcı adı güncellendi.",
	MsgDisplayNameRequired:  "Kullanıcı adı gereklidir.",
	MsgContactSent:          "Mesajınız başarıyla gönderildi!",
	MsgNewsletterSubscribed: "E-bültenimize abone oldunuz!",
	MsgInvalidRequestBody:   "Geçersiz istek.",
	MsgUnauthorized:         "Bu işlem için giriş yapmalısınız.",
	MsgForbidden:            "Bu işlem için yetkiniz yok.",
	MsgTooManyRequests:      "Çok fazla deneme yaptınız. Lütfen daha sonra tekrar deneyin.",
	MsgInternal:             "Bir hata oluştu. Lütfen tekrar deneyin.",
	MsgGoogleTokenRequired:  "Google kimlik belirteci gereklidir.",
	MsgSessionExpired:       "Oturumunuzun süresi doldu. Lütfen tekrar giriş yapın.",
	MsgNotSignedIn:          "Giriş yapılmadı.",
}

var english = map[string]string{
	provider.CodeEmailAlreadyInUse:   "This email address is already in use.",
	provider.CodeWeakPassword:        "Password must be at least 6 characters.",
	provider.CodeInvalidEmail:        "Invalid email address.",
	provider.CodeUserNotFound:        "User not found.",
	provider.CodeWrongPassword:       "Wrong password.",
	provider.CodeDifferentCredential: "An account already exists for this email with a different sign-in method.",
	provider.CodeUserDisabled:        "This account has been disabled.",

	MsgAllFieldsRequired:    "All fields are required.",
	MsgCredentialsRequired:  "Email and password are required.",
	MsgProfileNotFound:      "User not found.",
	MsgAccountBanned:        "This account has been banned.",
	MsgInvalidRole:          "Invalid role.",
	MsgRegistered:           "Account created successfully.",
	MsgLoggedIn:             "Logged in successfully.",
	MsgLoggedOut:            "Logged out successfully.",
	MsgRoleUpdated:          "Role updated successfully.",
	MsgUserBanned:           "User has been banned.",
	MsgUserUnbanned:         "User has been unbanned.",
	MsgDisplayNameUpdated:   "Display name updated.",
	MsgDisplayNameRequired:  "Display name is required.",
	MsgContactSent:          "Your message has been sent!",
	MsgNewsletterSubscribed: "You have subscribed to our newsletter!",
	MsgInvalidRequestBody:   "Invalid request.",
	MsgUnauthorized:         "You must be signed in to do this.",
	MsgForbidden:            "You are not allowed to do this.",
	MsgTooManyRequests:      "Too many attempts. Please try again later.",
	MsgInternal:             "Something went wrong. Please try again.",
	MsgGoogleTokenRequired:  "A Google ID token is required.",
	MsgSessionExpired:       "Your session has expired. Please sign in again.",
	MsgNotSignedIn:          "Not signed in.",
}
