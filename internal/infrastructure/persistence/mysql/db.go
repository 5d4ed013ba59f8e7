package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// NewDB 创建数据库连接，配置连接池并自动迁移表结构
// debug模式下打印SQL
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	logger.L().Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := autoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}
	return db, nil
}

// autoMigrate 迁移表结构并写入内置角色
// 生产环境应使用版本化的迁移脚本
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&RoleModel{},
		&UserModel{},
		&CategoryModel{},
		&BookModel{},
		&ShoppingCartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
	if err != nil {
		return err
	}

	for _, name := range user.AllRoles {
		role := RoleModel{Name: string(name)}
		if err := db.Where(RoleModel{Name: string(name)}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("初始化角色失败: %w", err)
		}
	}
	return nil
}

// RoleModel 角色
type RoleModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:20;not null;comment:角色名"`
	IsDeleted bool   `gorm:"index;not null;default:false;comment:软删除标记"`
}

func (RoleModel) TableName() string {
	return "roles"
}

// UserModel 用户
type UserModel struct {
	ID              uint        `gorm:"primaryKey"`
	Email           string      `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password        string      `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	FirstName       string      `gorm:"size:50;not null"`
	LastName        string      `gorm:"size:50;not null"`
	ShippingAddress string      `gorm:"size:255;comment:默认收货地址"`
	Roles           []RoleModel `gorm:"many2many:users_roles;joinForeignKey:UserID;joinReferences:RoleID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel 分类
type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"size:500"`
	IsDeleted   bool   `gorm:"index;not null;default:false"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel 图书
// title、author建搜索索引，isbn唯一
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string          `gorm:"index:idx_search;size:100;not null;comment:作者"`
	ISBN        string          `gorm:"column:isbn;uniqueIndex;size:20;not null;comment:ISBN号"`
	Price       decimal.Decimal `gorm:"type:decimal(19,4);not null;comment:价格"`
	Description string          `gorm:"type:text;comment:图书描述"`
	CoverImage  string          `gorm:"size:500;comment:封面图片"`
	IsDeleted   bool            `gorm:"index;not null;default:false;comment:软删除标记"`
	Categories  []CategoryModel `gorm:"many2many:books_categories;joinForeignKey:BookID;joinReferences:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// ShoppingCartModel 购物车，每个用户一个
type ShoppingCartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null"`
	Items     []CartItemModel `gorm:"foreignKey:ShoppingCartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ShoppingCartModel) TableName() string {
	return "shopping_carts"
}

// CartItemModel 购物车条目
type CartItemModel struct {
	ID             uint `gorm:"primaryKey"`
	ShoppingCartID uint `gorm:"index;not null"`
	BookID         uint `gorm:"index;not null"`
	Quantity       int  `gorm:"not null"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel 订单，与OrderItemModel一对多
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	Status          string           `gorm:"index;size:20;not null;comment:订单状态"`
	Total           decimal.Decimal  `gorm:"type:decimal(19,4);not null;comment:订单总金额"`
	OrderDate       time.Time        `gorm:"index;not null;comment:下单时间"`
	ShippingAddress string           `gorm:"size:255;not null;comment:收货地址"`
	IsDeleted       bool             `gorm:"index;not null;default:false;comment:软删除标记"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细，Price为下单时的行价格快照
type OrderItemModel struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uint            `gorm:"index;not null;comment:订单ID"`
	BookID   uint            `gorm:"index;not null;comment:图书ID"`
	Quantity int             `gorm:"not null;comment:购买数量"`
	Price    decimal.Decimal `gorm:"type:decimal(19,4);not null;comment:行价格"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
