package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/kennylimz/anime-character-guessr/models"
)

// AnswerSealer 谜底封装能力。密钥是部署层面的共享秘密，
// 只用来防止玩家随手打开开发者工具看到谜底，不是安全边界
type AnswerSealer interface {
	Seal(character *models.Character) (string, error)
	Reveal(sealed string) (*models.Character, error)
}

var ErrSealedTooShort = errors.New("谜底密文格式错误")

type aesSealer struct {
	gcm cipher.AEAD
}

// NewAnswerSealer 用共享口令派生AES-GCM密钥
func NewAnswerSealer(secret string) (AnswerSealer, error) {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &aesSealer{gcm: gcm}, nil
}

// Seal 加密角色信息，输出base64(nonce||密文)
func (s *aesSealer) Seal(character *models.Character) (string, error) {
	plain, err := json.Marshal(character)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := s.gcm.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Reveal 解开Seal的输出
func (s *aesSealer) Reveal(sealed string) (*models.Character, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, err
	}
	if len(raw) < s.gcm.NonceSize() {
		return nil, ErrSealedTooShort
	}

	nonce, ciphertext := raw[:s.gcm.NonceSize()], raw[s.gcm.NonceSize():]
	plain, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}

	var character models.Character
	if err := json.Unmarshal(plain, &character); err != nil {
		return nil, err
	}
	return &character, nil
}
